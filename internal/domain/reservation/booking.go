package reservation

import "strings"

// User is the slice of the collaborator's user record the booking views need.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Booking mirrors the authoritative booking record owned by the collaborator.
// The portal only reads it and requests mutations; it is refetched wholesale
// after every attempted change rather than patched in place.
type Booking struct {
	ID              int64         `json:"id"`
	Code            string        `json:"code"`
	UserID          int64         `json:"user_id"`
	RoomID          int64         `json:"room_id"`
	CheckIn         Date          `json:"check_in"`
	CheckOut        Date          `json:"check_out"`
	Guests          int           `json:"guests"`
	TotalAmount     float64       `json:"total_amount"`
	TaxAmount       float64       `json:"tax_amount"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	SpecialRequests string        `json:"special_requests,omitempty"`

	PaymentDate          Date   `json:"payment_date,omitempty"`
	RefundDate           Date   `json:"refund_date,omitempty"`
	PaymentReference     string `json:"payment_reference,omitempty"`
	PaymentMethod        string `json:"payment_method,omitempty"`
	PaymentMethodAccount string `json:"payment_method_account,omitempty"`

	User *User `json:"user,omitempty"`
	Room *Room `json:"room,omitempty"`
}

// BookingDraft is the transient reservation input gathered from the guest
// before submission. It is owned by the browsing session and discarded on
// cancel or on successful submit.
type BookingDraft struct {
	RoomID          int64  `json:"room_id"`
	CheckIn         Date   `json:"check_in"`
	CheckOut        Date   `json:"check_out"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// Nights returns the whole-night span of the draft.
func (d BookingDraft) Nights() int {
	return d.CheckOut.DaysSince(d.CheckIn)
}

// BookingPatch is a partial admin mutation of a booking: either a status
// change, a payment status change, or payment metadata recording an
// out-of-band payment event. Nil fields are left untouched server-side.
type BookingPatch struct {
	Status               *BookingStatus `json:"status,omitempty"`
	PaymentStatus        *PaymentStatus `json:"payment_status,omitempty"`
	PaymentDate          *Date          `json:"payment_date,omitempty"`
	RefundDate           *Date          `json:"refund_date,omitempty"`
	PaymentReference     *string        `json:"payment_reference,omitempty"`
	PaymentMethod        *string        `json:"payment_method,omitempty"`
	PaymentMethodAccount *string        `json:"payment_method_account,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p BookingPatch) IsEmpty() bool {
	return p.Status == nil && p.PaymentStatus == nil &&
		p.PaymentDate == nil && p.RefundDate == nil &&
		p.PaymentReference == nil && p.PaymentMethod == nil &&
		p.PaymentMethodAccount == nil
}

// BookingTab is the guest-side partition of a booking list.
type BookingTab string

const (
	TabUpcoming  BookingTab = "upcoming"
	TabPast      BookingTab = "past"
	TabCancelled BookingTab = "cancelled"
)

// FilterByTab partitions bookings the way the guest booking list renders
// them: cancelled bookings on their own tab, stays that are still ahead (or
// in progress) under upcoming, and finished stays under past.
func FilterByTab(bookings []Booking, tab BookingTab, today Date) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		switch tab {
		case TabCancelled:
			if b.Status == StatusCancelled {
				out = append(out, b)
			}
		case TabUpcoming:
			if b.Status == StatusPending || b.Status == StatusConfirmed ||
				(b.Status == StatusCheckedIn && b.CheckOut.After(today)) {
				out = append(out, b)
			}
		case TabPast:
			if b.Status == StatusCheckedOut ||
				(b.CheckOut.Before(today) && b.Status != StatusCancelled) {
				out = append(out, b)
			}
		}
	}
	return out
}

// MatchesSearch reports whether the booking matches the admin search box:
// guest name, room number, or booking code, case-insensitively.
func (b Booking) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if b.User != nil && strings.Contains(strings.ToLower(b.User.Name), term) {
		return true
	}
	if b.Room != nil && strings.Contains(strings.ToLower(b.Room.Number), term) {
		return true
	}
	return strings.Contains(strings.ToLower(b.Code), term)
}

// FilterBookings applies the admin list filters: free-text search plus an
// optional status filter ("all" or empty selects everything).
func FilterBookings(bookings []Booking, term, status string) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.MatchesSearch(term) {
			continue
		}
		if status != "" && status != "all" && string(b.Status) != status {
			continue
		}
		out = append(out, b)
	}
	return out
}
