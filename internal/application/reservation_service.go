package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stayline/guest-portal/internal/domain/reservation"
	"github.com/stayline/guest-portal/internal/hotelapi"
)

// submitCooldown is the minimum spacing between submission attempts from one
// session, guarding against duplicate rapid-fire submits.
const submitCooldown = 2 * time.Second

// reservationSession is one guest's browsing-to-booking workflow. The
// availability map, criteria and draft are owned exclusively by the session;
// the mutex serializes the cooperative UI's calls so a concurrent duplicate
// click waits behind the in-flight action.
type reservationSession struct {
	mu sync.Mutex

	id       uuid.UUID
	state    reservation.FlowState
	known    []reservation.Room
	criteria *reservation.SearchCriteria

	availability reservation.AvailabilityMap
	selected     *reservation.Room
	draft        *reservation.BookingDraft
	quote        *reservation.Quote
	booking      *reservation.Booking
	message      string

	submitLimiter *rate.Limiter
}

// SessionView is the handler-facing snapshot of a session. It exposes
// copies; the live session state never leaves the service.
type SessionView struct {
	SessionID    uuid.UUID                   `json:"session_id"`
	State        reservation.FlowState       `json:"state"`
	Rooms        []reservation.Room          `json:"rooms"`
	Availability reservation.AvailabilityMap `json:"availability,omitempty"`
	Selected     *reservation.Room           `json:"selected_room,omitempty"`
	Draft        *reservation.BookingDraft   `json:"draft,omitempty"`
	Quote        *reservation.Quote          `json:"quote,omitempty"`
	Booking      *reservation.Booking        `json:"booking,omitempty"`
	Message      string                      `json:"message,omitempty"`
}

// ReservationService drives the reservation submission state machine:
// Browsing -> Checking -> FormOpen -> Submitting -> Confirmed | Rejected.
// Retries are always guest-initiated; the service never resubmits on its
// own, since an automatic retry on a booking conflict could create
// ambiguous duplicate submissions.
type ReservationService struct {
	availability *AvailabilityService
	bookings     reservation.BookingGateway
	hotelInfo    *HotelInfoService
	logger       *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*reservationSession
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	availability *AvailabilityService,
	bookings reservation.BookingGateway,
	hotelInfo *HotelInfoService,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		availability: availability,
		bookings:     bookings,
		hotelInfo:    hotelInfo,
		logger:       logger,
		sessions:     make(map[uuid.UUID]*reservationSession),
	}
}

// StartSession opens a browsing session with the current room list.
func (s *ReservationService) StartSession(ctx context.Context) (SessionView, error) {
	rooms, err := s.availability.BrowseRooms(ctx)
	if err != nil {
		return SessionView{}, err
	}

	sess := &reservationSession{
		id:    uuid.New(),
		state: reservation.FlowBrowsing,
		known: rooms,
		// One submission at a time with a short cool-down; the guest retries
		// by clicking again, not by the machine hammering the collaborator.
		submitLimiter: rate.NewLimiter(rate.Every(submitCooldown), 1),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess.view(), nil
}

// EndSession tears the session down. Any in-flight request is abandoned by
// the caller cancelling its context; the draft dies with the session.
func (s *ReservationService) EndSession(sessionID uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Search validates nothing itself: criteria arrive already normalized
// through reservation.NewSearchCriteria. It reconciles availability for the
// range and replaces the session's map wholesale. On failure the previous
// map is untouched: stale-but-safe over corrupted.
func (s *ReservationService) Search(ctx context.Context, sessionID uuid.UUID, criteria reservation.SearchCriteria) (SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != reservation.FlowBrowsing {
		return sess.view(), reservation.NewInvalidStateError(sess.state.String(), reservation.FlowBrowsing.String())
	}

	m, err := s.availability.Query(ctx, criteria, sess.known)
	if err != nil {
		// Existing map stays as is.
		return sess.view(), err
	}

	sess.criteria = &criteria
	sess.availability = m
	sess.message = ""
	return sess.view(), nil
}

// SelectRoom runs the race-narrowing re-check for one room and opens the
// booking form when it passes. When the re-check fails the whole
// availability map is considered stale: it is refreshed in full and the
// guest is returned to browsing with the room now marked unavailable.
func (s *ReservationService) SelectRoom(ctx context.Context, sessionID uuid.UUID, roomID int64) (SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.criteria == nil {
		return sess.view(), reservation.NewValidationError("search for availability before selecting a room")
	}
	if err := sess.transition(reservation.FlowChecking); err != nil {
		return sess.view(), err
	}

	entry, ok := sess.availability[roomID]
	if !ok || !entry.Available {
		// Conservative gate: a room the map does not mark available is not
		// offered, no matter what a stale UI asked for.
		sess.force(reservation.FlowRejected, reservation.FlowBrowsing)
		sess.message = "room is not available for the selected dates"
		return sess.view(), reservation.NewValidationError(sess.message)
	}

	available, err := s.availability.CheckRoom(ctx, roomID, sess.criteria.CheckIn, sess.criteria.CheckOut)
	if err != nil {
		sess.force(reservation.FlowRejected, reservation.FlowBrowsing)
		return sess.view(), err
	}
	if !available {
		// The single rejection signals the broader map is stale; refresh it
		// in full before handing the guest back to the list.
		sess.force(reservation.FlowRejected)
		s.refreshAvailability(ctx, sess)
		sess.force(reservation.FlowBrowsing)
		sess.message = fmt.Sprintf("room %s was just booked by another guest", entry.Room.Number)
		return sess.view(), &hotelapi.ConflictError{Message: sess.message}
	}

	quote, err := s.quoteFor(ctx, entry.Room, sess.criteria.Nights())
	if err != nil {
		sess.force(reservation.FlowRejected, reservation.FlowBrowsing)
		return sess.view(), err
	}

	sess.force(reservation.FlowFormOpen)
	room := entry.Room
	sess.selected = &room
	sess.quote = &quote
	sess.message = ""
	if sess.draft == nil || sess.draft.RoomID != roomID {
		sess.draft = &reservation.BookingDraft{
			RoomID:   roomID,
			CheckIn:  sess.criteria.CheckIn,
			CheckOut: sess.criteria.CheckOut,
			Guests:   sess.criteria.Guests,
		}
	}
	return sess.view(), nil
}

// CancelForm abandons the booking form and discards the draft.
func (s *ReservationService) CancelForm(sessionID uuid.UUID) (SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.transition(reservation.FlowBrowsing); err != nil {
		return sess.view(), err
	}
	sess.draft = nil
	sess.selected = nil
	sess.quote = nil
	sess.message = ""
	return sess.view(), nil
}

// SubmitInput is the booking form as submitted by the guest. Dates and guest
// count may have been edited in the form, so they are re-validated here,
// before any network call.
type SubmitInput struct {
	CheckIn         reservation.Date
	CheckOut        reservation.Date
	Guests          int
	SpecialRequests string
}

// Submit drives FormOpen -> Submitting -> Confirmed | Rejected. One more
// single-room re-check runs immediately before the request; the collaborator
// remains the final guard against double booking either way. On rejection
// the draft is retained so the guest does not re-enter their data; on
// success it is discarded.
func (s *ReservationService) Submit(ctx context.Context, sessionID uuid.UUID, userID int64, input SubmitInput) (SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != reservation.FlowFormOpen || sess.selected == nil || sess.draft == nil {
		return sess.view(), reservation.NewInvalidStateError(sess.state.String(), reservation.FlowSubmitting.String())
	}

	// Validation failures block before any network call.
	criteria, err := reservation.NewSearchCriteria(input.CheckIn, input.CheckOut, input.Guests)
	if err != nil {
		return sess.view(), err
	}
	if criteria.Nights() < 1 {
		return sess.view(), reservation.ErrNoNights
	}
	if input.Guests > sess.selected.Capacity {
		return sess.view(), reservation.NewValidationError(
			fmt.Sprintf("room %s sleeps at most %d guests", sess.selected.Number, sess.selected.Capacity))
	}
	if !sess.submitLimiter.Allow() {
		return sess.view(), reservation.NewValidationError("a submission is already being processed, please wait")
	}

	sess.draft.CheckIn = input.CheckIn
	sess.draft.CheckOut = input.CheckOut
	sess.draft.Guests = input.Guests
	sess.draft.SpecialRequests = input.SpecialRequests

	sess.force(reservation.FlowSubmitting)

	// Last-moment re-check narrows, but cannot eliminate, the window in
	// which another guest books the same room.
	available, err := s.availability.CheckRoom(ctx, sess.draft.RoomID, input.CheckIn, input.CheckOut)
	if err != nil {
		sess.force(reservation.FlowRejected, reservation.FlowFormOpen)
		return sess.view(), err
	}
	if !available {
		sess.force(reservation.FlowRejected)
		s.refreshAvailability(ctx, sess)
		sess.force(reservation.FlowBrowsing)
		sess.message = fmt.Sprintf("room %s was just booked by another guest", sess.selected.Number)
		return sess.view(), &hotelapi.ConflictError{Message: sess.message}
	}

	quote, err := s.quoteFor(ctx, *sess.selected, criteria.Nights())
	if err != nil {
		sess.force(reservation.FlowRejected, reservation.FlowFormOpen)
		return sess.view(), err
	}
	sess.quote = &quote

	booking, message, err := s.bookings.CreateBooking(ctx, userID, *sess.draft, quote)
	if err != nil {
		if hotelapi.IsConflict(err) {
			sess.force(reservation.FlowRejected)
			s.refreshAvailability(ctx, sess)
			sess.force(reservation.FlowBrowsing)
			sess.message = hotelapi.UserMessage(err, "room is no longer available")
			return sess.view(), err
		}
		// Validation or transport failure: reopen the form, keep the draft.
		sess.force(reservation.FlowRejected, reservation.FlowFormOpen)
		sess.message = hotelapi.UserMessage(err, "error creating booking")
		return sess.view(), err
	}

	// The collaborator's totals are authoritative; the client quote was
	// advisory only.
	sess.force(reservation.FlowConfirmed)
	sess.booking = &booking
	sess.draft = nil
	sess.message = message
	s.logger.Info("booking confirmed",
		zap.Int64("booking_id", booking.ID),
		zap.String("code", booking.Code),
		zap.Int64("room_id", booking.RoomID),
	)
	return sess.view(), nil
}

// View returns the current snapshot of a session.
func (s *ReservationService) View(sessionID uuid.UUID) (SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

func (s *ReservationService) session(id uuid.UUID) (*reservationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, reservation.NewValidationError("unknown or expired browsing session")
	}
	return sess, nil
}

// refreshAvailability re-runs the bulk query after a rejection. A failure
// here keeps the previous map: stale-but-safe.
func (s *ReservationService) refreshAvailability(ctx context.Context, sess *reservationSession) {
	if sess.criteria == nil {
		return
	}
	m, err := s.availability.Query(ctx, *sess.criteria, sess.known)
	if err != nil {
		if !hotelapi.IsCanceled(err) {
			s.logger.Warn("availability refresh after rejection failed", zap.Error(err))
		}
		return
	}
	sess.availability = m
}

func (s *ReservationService) quoteFor(ctx context.Context, room reservation.Room, nights int) (reservation.Quote, error) {
	info, err := s.hotelInfo.Get(ctx)
	if err != nil {
		return reservation.Quote{}, err
	}
	return reservation.Price(room, nights, info.TaxRate)
}

// transition moves the session along the flow state machine, rejecting
// moves the table does not allow.
func (sess *reservationSession) transition(to reservation.FlowState) error {
	if !sess.state.CanTransitionTo(to) {
		return reservation.NewInvalidStateError(sess.state.String(), to.String())
	}
	sess.state = to
	return nil
}

// force walks the session through one or more transitions that are known
// legal by construction of the calling code.
func (sess *reservationSession) force(states ...reservation.FlowState) {
	for _, st := range states {
		if err := sess.transition(st); err != nil {
			// A table bug, not a runtime condition.
			panic(err)
		}
	}
}

func (sess *reservationSession) view() SessionView {
	return SessionView{
		SessionID:    sess.id,
		State:        sess.state,
		Rooms:        sess.known,
		Availability: sess.availability,
		Selected:     sess.selected,
		Draft:        sess.draft,
		Quote:        sess.quote,
		Booking:      sess.booking,
		Message:      sess.message,
	}
}
