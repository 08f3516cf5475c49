package application

import (
	"context"
	"errors"
	"sync"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// fakeRoomGateway scripts room endpoints with function fields; unset fields
// yield empty answers.
type fakeRoomGateway struct {
	mu sync.Mutex

	listRoomsFn      func(ctx context.Context) ([]reservation.Room, error)
	availableRoomsFn func(ctx context.Context, criteria reservation.SearchCriteria) ([]reservation.Room, error)
	checkRoomFn      func(ctx context.Context, roomID int64, checkIn, checkOut reservation.Date) (bool, error)

	availableRoomsCalls int
	checkRoomCalls      int
}

func (f *fakeRoomGateway) ListRooms(ctx context.Context) ([]reservation.Room, error) {
	if f.listRoomsFn != nil {
		return f.listRoomsFn(ctx)
	}
	return nil, nil
}

func (f *fakeRoomGateway) AvailableRooms(ctx context.Context, criteria reservation.SearchCriteria) ([]reservation.Room, error) {
	f.mu.Lock()
	f.availableRoomsCalls++
	f.mu.Unlock()
	if f.availableRoomsFn != nil {
		return f.availableRoomsFn(ctx, criteria)
	}
	return nil, nil
}

func (f *fakeRoomGateway) CheckRoomAvailability(ctx context.Context, roomID int64, checkIn, checkOut reservation.Date) (bool, error) {
	f.mu.Lock()
	f.checkRoomCalls++
	f.mu.Unlock()
	if f.checkRoomFn != nil {
		return f.checkRoomFn(ctx, roomID, checkIn, checkOut)
	}
	return false, nil
}

func (f *fakeRoomGateway) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.availableRoomsCalls
}

type fakeBookingGateway struct {
	mu sync.Mutex

	createFn func(ctx context.Context, userID int64, draft reservation.BookingDraft, quote reservation.Quote) (reservation.Booking, string, error)
	guestFn  func(ctx context.Context) ([]reservation.Booking, error)
	cancelFn func(ctx context.Context, bookingID int64) (string, error)
	listFn   func(ctx context.Context) ([]reservation.Booking, error)
	updateFn func(ctx context.Context, bookingID int64, patch reservation.BookingPatch) (reservation.Booking, string, error)

	guestCalls int
	listCalls  int
}

func (f *fakeBookingGateway) CreateBooking(ctx context.Context, userID int64, draft reservation.BookingDraft, quote reservation.Quote) (reservation.Booking, string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, userID, draft, quote)
	}
	return reservation.Booking{}, "", errors.New("createFn not scripted")
}

func (f *fakeBookingGateway) GuestBookings(ctx context.Context) ([]reservation.Booking, error) {
	f.mu.Lock()
	f.guestCalls++
	f.mu.Unlock()
	if f.guestFn != nil {
		return f.guestFn(ctx)
	}
	return nil, nil
}

func (f *fakeBookingGateway) CancelBooking(ctx context.Context, bookingID int64) (string, error) {
	if f.cancelFn != nil {
		return f.cancelFn(ctx, bookingID)
	}
	return "", errors.New("cancelFn not scripted")
}

func (f *fakeBookingGateway) ListBookings(ctx context.Context) ([]reservation.Booking, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeBookingGateway) UpdateBooking(ctx context.Context, bookingID int64, patch reservation.BookingPatch) (reservation.Booking, string, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, bookingID, patch)
	}
	return reservation.Booking{}, "", errors.New("updateFn not scripted")
}

type fakeHotelInfoGateway struct {
	mu    sync.Mutex
	info  reservation.HotelInfo
	err   error
	calls int
}

func (f *fakeHotelInfoGateway) HotelInfo(ctx context.Context) (reservation.HotelInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return reservation.HotelInfo{}, f.err
	}
	return f.info, nil
}

func (f *fakeHotelInfoGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeReportGateway struct {
	reportFn func(ctx context.Context, timeRange string) (reservation.Report, error)
}

func (f *fakeReportGateway) Report(ctx context.Context, timeRange string) (reservation.Report, error) {
	if f.reportFn != nil {
		return f.reportFn(ctx, timeRange)
	}
	return reservation.Report{}, nil
}
