package hotelapi

import (
	"context"
	"fmt"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// createBookingRequest is the POST bookings body. Status and payment status
// always start as pending; the collaborator owns every later transition.
type createBookingRequest struct {
	UserID          int64   `json:"user_id"`
	RoomID          int64   `json:"room_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Guests          int     `json:"guests"`
	TotalAmount     float64 `json:"total_amount"`
	TaxAmount       float64 `json:"tax_amount"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status"`
	SpecialRequests string  `json:"special_requests,omitempty"`
}

// bookingEnvelope wraps mutation responses: a human message plus the
// authoritative record.
type bookingEnvelope struct {
	Message string               `json:"message"`
	Booking *reservation.Booking `json:"booking"`
}

// bookingRequired are the fields boundary validation insists on before a
// payload is allowed into the core.
type bookingRequired struct {
	ID            int64  `validate:"required"`
	Status        string `validate:"required"`
	PaymentStatus string `validate:"required"`
}

// CreateBooking submits a guest reservation. The quote is advisory only; the
// booking the collaborator returns carries the authoritative totals.
func (c *Client) CreateBooking(ctx context.Context, userID int64, draft reservation.BookingDraft, quote reservation.Quote) (reservation.Booking, string, error) {
	req := createBookingRequest{
		UserID:          userID,
		RoomID:          draft.RoomID,
		CheckIn:         draft.CheckIn.String(),
		CheckOut:        draft.CheckOut.String(),
		Guests:          draft.Guests,
		TotalAmount:     quote.Total,
		TaxAmount:       quote.TaxAmount,
		Status:          reservation.StatusPending.String(),
		PaymentStatus:   reservation.PaymentPending.String(),
		SpecialRequests: draft.SpecialRequests,
	}

	var env bookingEnvelope
	if err := c.postJSON(ctx, "/api/guest/bookings", req, &env); err != nil {
		return reservation.Booking{}, "", err
	}
	booking, err := c.validateBooking(env.Booking)
	if err != nil {
		return reservation.Booking{}, "", err
	}
	return booking, env.Message, nil
}

// GuestBookings retrieves the calling guest's bookings.
func (c *Client) GuestBookings(ctx context.Context) ([]reservation.Booking, error) {
	var payload []reservation.Booking
	if err := c.get(ctx, "/api/guest/bookings", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CancelBooking requests a guest-initiated cancellation. The collaborator is
// authoritative on whether the booking is still cancellable.
func (c *Client) CancelBooking(ctx context.Context, bookingID int64) (string, error) {
	var env apiEnvelope
	path := fmt.Sprintf("/api/guest/bookings/%d/cancel-booking", bookingID)
	if err := c.putJSON(ctx, path, nil, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// ListBookings retrieves the full booking list (admin).
func (c *Client) ListBookings(ctx context.Context) ([]reservation.Booking, error) {
	var payload []reservation.Booking
	if err := c.get(ctx, "/api/admin/bookings", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpdateBooking requests a partial admin mutation (status, payment status,
// or payment metadata).
func (c *Client) UpdateBooking(ctx context.Context, bookingID int64, patch reservation.BookingPatch) (reservation.Booking, string, error) {
	var env bookingEnvelope
	path := fmt.Sprintf("/api/admin/bookings/%d", bookingID)
	if err := c.putJSON(ctx, path, patch, &env); err != nil {
		return reservation.Booking{}, "", err
	}
	booking, err := c.validateBooking(env.Booking)
	if err != nil {
		return reservation.Booking{}, "", err
	}
	return booking, env.Message, nil
}

func (c *Client) validateBooking(b *reservation.Booking) (reservation.Booking, error) {
	if b == nil {
		return reservation.Booking{}, &TransportError{Err: fmt.Errorf("response missing booking record")}
	}
	required := bookingRequired{
		ID:            b.ID,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
	}
	if err := c.checkResponse(required, "booking"); err != nil {
		return reservation.Booking{}, err
	}
	if !b.Status.IsValid() {
		return reservation.Booking{}, &TransportError{Err: fmt.Errorf("unknown booking status %q", b.Status)}
	}
	if !b.PaymentStatus.IsValid() {
		return reservation.Booking{}, &TransportError{Err: fmt.Errorf("unknown payment status %q", b.PaymentStatus)}
	}
	return *b, nil
}

var _ reservation.BookingGateway = (*Client)(nil)
