package reservation

import "fmt"

// RoomType is the closed set of room categories offered by the hotel.
type RoomType string

const (
	RoomTypeStandard     RoomType = "Standard"
	RoomTypeDeluxe       RoomType = "Deluxe"
	RoomTypeSuite        RoomType = "Suite"
	RoomTypePresidential RoomType = "Presidential"
)

// IsValid returns true if the room type is a recognized category.
func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypePresidential:
		return true
	}
	return false
}

// ParseRoomType converts a string to a RoomType, returning an error if invalid.
func ParseRoomType(s string) (RoomType, error) {
	rt := RoomType(s)
	if !rt.IsValid() {
		return "", fmt.Errorf("invalid room type: %s", s)
	}
	return rt, nil
}

// RoomStatus is the operational status of a room, independent of date-range
// availability.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusOccupied    RoomStatus = "Occupied"
	RoomStatusMaintenance RoomStatus = "Maintenance"
)

// Browsable reports whether guests may see the room at all. Only
// status=Available rooms are eligible for browsing regardless of date-range
// availability.
func (s RoomStatus) Browsable() bool {
	return s == RoomStatusAvailable
}

// Room is the collaborator-owned room record as mirrored by the portal.
type Room struct {
	ID            int64      `json:"id"`
	Number        string     `json:"number"`
	Type          RoomType   `json:"type"`
	PricePerNight float64    `json:"price_per_night"`
	Capacity      int        `json:"capacity"`
	Amenities     []string   `json:"amenities"`
	Description   string     `json:"description,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Status        RoomStatus `json:"status"`
	Floor         int        `json:"floor"`
}

// FitsCriteria reports whether the room satisfies the optional filters of the
// given criteria (capacity, type, price band). Date-range availability is the
// collaborator's call, not this function's.
func (r Room) FitsCriteria(c SearchCriteria) bool {
	if r.Capacity < c.Guests {
		return false
	}
	if c.RoomType != nil && r.Type != *c.RoomType {
		return false
	}
	if c.MinPrice != nil && r.PricePerNight < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && r.PricePerNight > *c.MaxPrice {
		return false
	}
	return true
}
