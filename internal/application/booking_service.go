package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// BookingService mirrors the collaborator's booking lifecycle for the guest
// and admin views. Every mutation is followed by a wholesale refetch of the
// list rather than a local patch, so a rejected transition self-heals to the
// server's view.
type BookingService struct {
	gateway reservation.BookingGateway
	logger  *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(gateway reservation.BookingGateway, logger *zap.Logger) *BookingService {
	return &BookingService{gateway: gateway, logger: logger}
}

// GuestBookings retrieves the caller's bookings, optionally narrowed to one
// of the guest tabs.
func (s *BookingService) GuestBookings(ctx context.Context, tab reservation.BookingTab) ([]reservation.Booking, error) {
	bookings, err := s.gateway.GuestBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	if tab == "" {
		return bookings, nil
	}
	return reservation.FilterByTab(bookings, tab, reservation.Today()), nil
}

// CancelOwnBooking is the guest-initiated cancellation. The portal only
// offers it while the booking is still pending; the collaborator enforces
// the same rule if the gate is bypassed. Returns the server message and the
// refetched list.
func (s *BookingService) CancelOwnBooking(ctx context.Context, bookingID int64) (string, []reservation.Booking, error) {
	current, err := s.gateway.GuestBookings(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	var target *reservation.Booking
	for i := range current {
		if current[i].ID == bookingID {
			target = &current[i]
			break
		}
	}
	if target == nil {
		return "", nil, reservation.NewValidationError("booking not found")
	}
	if !target.Status.GuestCancellable() {
		return "", nil, reservation.NewInvalidStateError(target.Status.String(), reservation.StatusCancelled.String())
	}

	message, err := s.gateway.CancelBooking(ctx, bookingID)
	if err != nil {
		return "", nil, err
	}

	refreshed, err := s.gateway.GuestBookings(ctx)
	if err != nil {
		// The cancellation went through; a failed refetch must not undo
		// that fact for the caller.
		s.logger.Warn("refetch after cancellation failed", zap.Error(err))
		return message, nil, nil
	}
	return message, refreshed, nil
}

// ListBookings retrieves the full booking list (admin).
func (s *BookingService) ListBookings(ctx context.Context) ([]reservation.Booking, error) {
	bookings, err := s.gateway.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus requests an admin status transition and returns the server
// message plus the wholesale-refetched list. The collaborator is
// authoritative on legality; the local table only shapes what the UI offers.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, status reservation.BookingStatus) (string, []reservation.Booking, error) {
	if !status.IsValid() {
		return "", nil, reservation.NewValidationError(fmt.Sprintf("invalid booking status: %s", status))
	}
	patch := reservation.BookingPatch{Status: &status}
	return s.applyPatch(ctx, bookingID, patch)
}

// UpdatePayment records an out-of-band payment event: the new payment status
// plus whatever metadata the admin captured (payment details when paid,
// refund date when refunded).
func (s *BookingService) UpdatePayment(ctx context.Context, bookingID int64, patch reservation.BookingPatch) (string, []reservation.Booking, error) {
	if patch.PaymentStatus != nil && !patch.PaymentStatus.IsValid() {
		return "", nil, reservation.NewValidationError(fmt.Sprintf("invalid payment status: %s", *patch.PaymentStatus))
	}
	if patch.Status != nil {
		return "", nil, reservation.NewValidationError("payment update cannot change booking status")
	}
	if patch.IsEmpty() {
		return "", nil, reservation.NewValidationError("nothing to update")
	}
	return s.applyPatch(ctx, bookingID, patch)
}

func (s *BookingService) applyPatch(ctx context.Context, bookingID int64, patch reservation.BookingPatch) (string, []reservation.Booking, error) {
	_, message, err := s.gateway.UpdateBooking(ctx, bookingID, patch)
	if err != nil {
		return "", nil, err
	}

	refreshed, err := s.gateway.ListBookings(ctx)
	if err != nil {
		s.logger.Warn("refetch after booking update failed", zap.Error(err))
		return message, nil, nil
	}
	return message, refreshed, nil
}
