package reservation

// AvailabilityEntry records whether a single room is free for a specific date
// range, together with the room snapshot the verdict was computed from.
type AvailabilityEntry struct {
	RoomID    int64 `json:"room_id"`
	Available bool  `json:"available"`
	Room      Room  `json:"room"`
}

// AvailabilityMap is the per-room availability snapshot for one date range.
// It is rebuilt wholesale on every query; entries are never patched in place.
type AvailabilityMap map[int64]AvailabilityEntry

// BuildAvailabilityMap constructs a fresh availability map from the rooms the
// client already knows about and the collaborator's list of free rooms.
//
// The merge is conservative: every known browsable room defaults
// to unavailable, and only rooms present in the free list are flipped to
// available. A room absent from the response (capacity mismatch, status, or
// overlap with an existing booking) is never offered as bookable. Rooms that
// appear in the response but were not previously known are added as
// available, so a freshly listed room shows up without a second fetch.
func BuildAvailabilityMap(known []Room, free []Room) AvailabilityMap {
	m := make(AvailabilityMap, len(known))
	for _, r := range known {
		if !r.Status.Browsable() {
			continue
		}
		m[r.ID] = AvailabilityEntry{RoomID: r.ID, Available: false, Room: r}
	}
	for _, r := range free {
		if !r.Status.Browsable() {
			continue
		}
		m[r.ID] = AvailabilityEntry{RoomID: r.ID, Available: true, Room: r}
	}
	return m
}

// AvailableRooms returns the rooms currently marked available, for rendering
// the bookable subset of the browsing list.
func (m AvailabilityMap) AvailableRooms() []Room {
	rooms := make([]Room, 0, len(m))
	for _, e := range m {
		if e.Available {
			rooms = append(rooms, e.Room)
		}
	}
	return rooms
}

// IsAvailable reports whether the room is known and currently marked free.
// Unknown rooms are unavailable.
func (m AvailabilityMap) IsAvailable(roomID int64) bool {
	e, ok := m[roomID]
	return ok && e.Available
}
