package hotelapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// roomPayload is the collaborator's room shape. Validation tags guard the
// fields the core depends on; everything else is display data.
type roomPayload struct {
	ID            int64    `json:"id" validate:"required"`
	Number        string   `json:"number" validate:"required"`
	Type          string   `json:"type" validate:"required"`
	PricePerNight float64  `json:"price_per_night" validate:"gte=0"`
	Capacity      int      `json:"capacity" validate:"gte=1"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Status        string   `json:"status" validate:"required"`
	Floor         int      `json:"floor"`
}

func (p roomPayload) toDomain() reservation.Room {
	return reservation.Room{
		ID:            p.ID,
		Number:        p.Number,
		Type:          reservation.RoomType(p.Type),
		PricePerNight: p.PricePerNight,
		Capacity:      p.Capacity,
		Amenities:     p.Amenities,
		Description:   p.Description,
		Images:        p.Images,
		Status:        reservation.RoomStatus(p.Status),
		Floor:         p.Floor,
	}
}

// ListRooms retrieves the guest-browsable room list.
func (c *Client) ListRooms(ctx context.Context) ([]reservation.Room, error) {
	var payload []roomPayload
	if err := c.get(ctx, "/api/guest/rooms", nil, &payload); err != nil {
		return nil, err
	}
	return c.toRooms(payload)
}

// AvailableRooms asks the collaborator which rooms are free for the given
// date range and party size. Rooms absent from the answer must be treated as
// unavailable by the caller.
func (c *Client) AvailableRooms(ctx context.Context, criteria reservation.SearchCriteria) ([]reservation.Room, error) {
	query := url.Values{
		"check_in":  {criteria.CheckIn.String()},
		"check_out": {criteria.CheckOut.String()},
		"guests":    {strconv.Itoa(criteria.Guests)},
	}
	if criteria.RoomType != nil {
		query.Set("room_type", string(*criteria.RoomType))
	}

	var payload struct {
		AvailableRooms []roomPayload `json:"available_rooms"`
	}
	if err := c.get(ctx, "/api/guest/rooms/available", query, &payload); err != nil {
		return nil, err
	}
	return c.toRooms(payload.AvailableRooms)
}

// CheckRoomAvailability is the targeted single-room re-check.
func (c *Client) CheckRoomAvailability(ctx context.Context, roomID int64, checkIn, checkOut reservation.Date) (bool, error) {
	query := url.Values{
		"room_id":   {strconv.FormatInt(roomID, 10)},
		"check_in":  {checkIn.String()},
		"check_out": {checkOut.String()},
	}

	var payload struct {
		Available bool `json:"available"`
	}
	if err := c.get(ctx, "/api/guest/rooms/check-availability", query, &payload); err != nil {
		return false, err
	}
	return payload.Available, nil
}

func (c *Client) toRooms(payload []roomPayload) ([]reservation.Room, error) {
	rooms := make([]reservation.Room, 0, len(payload))
	for _, p := range payload {
		if err := c.checkResponse(p, "room"); err != nil {
			return nil, err
		}
		rooms = append(rooms, p.toDomain())
	}
	return rooms, nil
}

var _ reservation.RoomGateway = (*Client)(nil)
