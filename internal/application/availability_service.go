package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// AvailabilityService answers "which rooms are free for this date range" by
// reconciling the collaborator's answer against the rooms the portal already
// knows about.
type AvailabilityService struct {
	rooms  reservation.RoomGateway
	logger *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(rooms reservation.RoomGateway, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{rooms: rooms, logger: logger}
}

// BrowseRooms fetches the guest-browsable room list. Rooms outside
// status=Available are filtered here; they are never shown regardless of
// date-range availability.
func (s *AvailabilityService) BrowseRooms(ctx context.Context) ([]reservation.Room, error) {
	all, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	browsable := make([]reservation.Room, 0, len(all))
	for _, r := range all {
		if r.Status.Browsable() {
			browsable = append(browsable, r)
		}
	}
	return browsable, nil
}

// Query runs one bulk availability request and rebuilds the availability map
// wholesale. Every known room defaults to unavailable and only rooms present
// in the collaborator's answer are flipped to available, so a room the
// server omits is never offered as bookable.
//
// On error the caller's existing map must be kept as is: stale-but-safe
// beats corrupted. Query signals that by returning a nil map with the error.
func (s *AvailabilityService) Query(ctx context.Context, criteria reservation.SearchCriteria, known []reservation.Room) (reservation.AvailabilityMap, error) {
	free, err := s.rooms.AvailableRooms(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("availability query failed: %w", err)
	}

	// The collaborator only filters by dates, party size and room type; the
	// price band is applied here.
	matching := make([]reservation.Room, 0, len(free))
	for _, r := range free {
		if r.FitsCriteria(criteria) {
			matching = append(matching, r)
		}
	}

	m := reservation.BuildAvailabilityMap(known, matching)
	s.logger.Debug("availability map rebuilt",
		zap.Int("known_rooms", len(known)),
		zap.Int("free_rooms", len(matching)),
		zap.String("check_in", criteria.CheckIn.String()),
		zap.String("check_out", criteria.CheckOut.String()),
	)
	return m, nil
}

// CheckRoom is the single-room re-check used right before opening the
// booking form and again right before submission.
func (s *AvailabilityService) CheckRoom(ctx context.Context, roomID int64, checkIn, checkOut reservation.Date) (bool, error) {
	available, err := s.rooms.CheckRoomAvailability(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, fmt.Errorf("room availability re-check failed: %w", err)
	}
	return available, nil
}
