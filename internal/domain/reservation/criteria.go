package reservation

import "fmt"

// SearchCriteria is a validated (check-in, check-out, guest-count) tuple with
// optional room-type and price filters. Construct it through
// NewSearchCriteria; a zero SearchCriteria is not meaningful.
type SearchCriteria struct {
	CheckIn  Date
	CheckOut Date
	Guests   int
	RoomType *RoomType
	MinPrice *float64
	MaxPrice *float64
}

// CriteriaOption customizes optional search filters.
type CriteriaOption func(*SearchCriteria)

// WithRoomType restricts the search to a single room type.
func WithRoomType(rt RoomType) CriteriaOption {
	return func(c *SearchCriteria) { c.RoomType = &rt }
}

// WithPriceRange restricts the search to a nightly price band. A nil bound
// leaves that side open.
func WithPriceRange(min, max *float64) CriteriaOption {
	return func(c *SearchCriteria) {
		c.MinPrice = min
		c.MaxPrice = max
	}
}

// NewSearchCriteria validates and normalizes the guest's search input.
// Check-in must not be in the past relative to the local calendar date,
// check-out must be strictly later than check-in, and guests must be at
// least 1. All constraints are enforced before any network call.
func NewSearchCriteria(checkIn, checkOut Date, guests int, opts ...CriteriaOption) (SearchCriteria, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return SearchCriteria{}, NewValidationError("check-in and check-out dates are required")
	}
	if checkIn.Before(Today()) {
		return SearchCriteria{}, NewValidationError("check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return SearchCriteria{}, NewValidationError("check-out date must be after check-in date")
	}
	if guests < 1 {
		return SearchCriteria{}, NewValidationError("at least one guest is required")
	}

	c := SearchCriteria{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.RoomType != nil && !c.RoomType.IsValid() {
		return SearchCriteria{}, NewValidationError(fmt.Sprintf("invalid room type: %s", *c.RoomType))
	}
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return SearchCriteria{}, NewValidationError("minimum price cannot be negative")
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MaxPrice < *c.MinPrice {
		return SearchCriteria{}, NewValidationError("maximum price cannot be below minimum price")
	}

	return c, nil
}

// Nights returns the integer day-count difference between check-out and
// check-in. This is the billing unit; it is always >= 1 for criteria built
// through NewSearchCriteria.
func (c SearchCriteria) Nights() int {
	return c.CheckOut.DaysSince(c.CheckIn)
}
