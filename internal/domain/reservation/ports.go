package reservation

import "context"

// RoomGateway is the collaborator contract for room browsing and
// availability queries.
type RoomGateway interface {
	// ListRooms retrieves every room the guest may browse.
	ListRooms(ctx context.Context) ([]Room, error)

	// AvailableRooms retrieves the rooms free for the criteria's date range
	// and party size.
	AvailableRooms(ctx context.Context, criteria SearchCriteria) ([]Room, error)

	// CheckRoomAvailability is the targeted single-room re-check used to
	// narrow the booking race window.
	CheckRoomAvailability(ctx context.Context, roomID int64, checkIn, checkOut Date) (bool, error)
}

// BookingGateway is the collaborator contract for booking reads and
// mutation requests. The collaborator is the source of truth for every
// booking record.
type BookingGateway interface {
	// CreateBooking submits a reservation. The returned booking is the
	// authoritative record, including the server-computed totals.
	CreateBooking(ctx context.Context, userID int64, draft BookingDraft, quote Quote) (Booking, string, error)

	// GuestBookings retrieves the calling guest's bookings.
	GuestBookings(ctx context.Context) ([]Booking, error)

	// CancelBooking is the guest-initiated cancellation, legal only while
	// the booking is still pending (the collaborator enforces this too).
	CancelBooking(ctx context.Context, bookingID int64) (string, error)

	// ListBookings retrieves the full booking list (admin).
	ListBookings(ctx context.Context) ([]Booking, error)

	// UpdateBooking requests a partial admin mutation and returns the
	// collaborator's view of the record.
	UpdateBooking(ctx context.Context, bookingID int64, patch BookingPatch) (Booking, string, error)
}

// HotelInfoGateway supplies the hotel-wide configuration (tax rate, currency
// symbol, check-in/out times).
type HotelInfoGateway interface {
	HotelInfo(ctx context.Context) (HotelInfo, error)
}

// ReportGateway supplies admin analytics for a given time range.
type ReportGateway interface {
	Report(ctx context.Context, timeRange string) (Report, error)
}
