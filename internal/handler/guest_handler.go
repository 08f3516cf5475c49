package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stayline/guest-portal/internal/application"
	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// GuestHandler exposes the guest self-service surface: room browsing with
// availability search, the reservation submission workflow, and the guest's
// own booking list.
type GuestHandler struct {
	reservations *application.ReservationService
	bookings     *application.BookingService
	hotelInfo    *application.HotelInfoService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(
	reservations *application.ReservationService,
	bookings *application.BookingService,
	hotelInfo *application.HotelInfoService,
) *GuestHandler {
	return &GuestHandler{
		reservations: reservations,
		bookings:     bookings,
		hotelInfo:    hotelInfo,
	}
}

// RegisterRoutes registers the guest routes on the given router group.
func (h *GuestHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/hotel-info", h.HotelInfo)

	guest := r.Group("/guest")
	{
		guest.POST("/sessions", h.StartSession)
		guest.GET("/sessions/:id", h.SessionView)
		guest.DELETE("/sessions/:id", h.EndSession)
		guest.POST("/sessions/:id/search", h.Search)
		guest.POST("/sessions/:id/select", h.SelectRoom)
		guest.POST("/sessions/:id/cancel-form", h.CancelForm)
		guest.POST("/sessions/:id/submit", h.Submit)

		guest.GET("/bookings", h.MyBookings)
		guest.PUT("/bookings/:id/cancel-booking", h.CancelBooking)
	}
}

// HotelInfo handles GET /api/hotel-info.
func (h *GuestHandler) HotelInfo(c *gin.Context) {
	info, err := h.hotelInfo.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, info)
}

// StartSession handles POST /api/guest/sessions.
func (h *GuestHandler) StartSession(c *gin.Context) {
	view, err := h.reservations.StartSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, view)
}

// SessionView handles GET /api/guest/sessions/:id.
func (h *GuestHandler) SessionView(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}
	view, err := h.reservations.View(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// EndSession handles DELETE /api/guest/sessions/:id.
func (h *GuestHandler) EndSession(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}
	h.reservations.EndSession(sessionID)
	c.Status(http.StatusNoContent)
}

// searchRequest is the guest's availability search input.
type searchRequest struct {
	CheckIn  string   `json:"check_in" binding:"required"`
	CheckOut string   `json:"check_out" binding:"required"`
	Guests   int      `json:"guests" binding:"required,gte=1"`
	RoomType *string  `json:"room_type"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

// Search handles POST /api/guest/sessions/:id/search.
func (h *GuestHandler) Search(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	criteria, err := parseCriteria(req)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.reservations.Search(c.Request.Context(), sessionID, criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// SelectRoom handles POST /api/guest/sessions/:id/select. A conflict answer
// still carries the refreshed session view so the frontend can re-render
// the list with the room greyed out.
func (h *GuestHandler) SelectRoom(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req struct {
		RoomID int64 `json:"room_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	view, err := h.reservations.SelectRoom(c.Request.Context(), sessionID, req.RoomID)
	if err != nil {
		respondRejected(c, view, err)
		return
	}
	respondOK(c, view)
}

// CancelForm handles POST /api/guest/sessions/:id/cancel-form.
func (h *GuestHandler) CancelForm(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}
	view, err := h.reservations.CancelForm(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// submitRequest is the booking form payload.
type submitRequest struct {
	UserID          int64  `json:"user_id" binding:"required"`
	CheckIn         string `json:"check_in" binding:"required"`
	CheckOut        string `json:"check_out" binding:"required"`
	Guests          int    `json:"guests" binding:"required,gte=1"`
	SpecialRequests string `json:"special_requests"`
}

// Submit handles POST /api/guest/sessions/:id/submit.
func (h *GuestHandler) Submit(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	checkIn, err := reservation.ParseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	checkOut, err := reservation.ParseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	view, err := h.reservations.Submit(c.Request.Context(), sessionID, req.UserID, application.SubmitInput{
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondRejected(c, view, err)
		return
	}
	respondCreated(c, view)
}

// MyBookings handles GET /api/guest/bookings?tab=upcoming|past|cancelled.
func (h *GuestHandler) MyBookings(c *gin.Context) {
	tab := reservation.BookingTab(c.Query("tab"))
	switch tab {
	case "", reservation.TabUpcoming, reservation.TabPast, reservation.TabCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid tab"})
		return
	}

	bookings, err := h.bookings.GuestBookings(c.Request.Context(), tab)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, bookings)
}

// CancelBooking handles PUT /api/guest/bookings/:id/cancel-booking.
func (h *GuestHandler) CancelBooking(c *gin.Context) {
	bookingID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	message, bookings, err := h.bookings.CancelOwnBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": message, "bookings": bookings})
}

// respondRejected pairs the error status with the session view, so a
// rejection still tells the frontend where the workflow landed.
func respondRejected(c *gin.Context, view application.SessionView, err error) {
	if view.SessionID == uuid.Nil {
		respondError(c, err)
		return
	}
	status, message := errorStatus(c, err)
	if status == 0 {
		return
	}
	c.JSON(status, gin.H{"message": message, "session": view})
}

func parseCriteria(req searchRequest) (reservation.SearchCriteria, error) {
	checkIn, err := reservation.ParseDate(req.CheckIn)
	if err != nil {
		return reservation.SearchCriteria{}, reservation.NewValidationError(err.Error())
	}
	checkOut, err := reservation.ParseDate(req.CheckOut)
	if err != nil {
		return reservation.SearchCriteria{}, reservation.NewValidationError(err.Error())
	}

	var opts []reservation.CriteriaOption
	if req.RoomType != nil && *req.RoomType != "" {
		rt, err := reservation.ParseRoomType(*req.RoomType)
		if err != nil {
			return reservation.SearchCriteria{}, reservation.NewValidationError(err.Error())
		}
		opts = append(opts, reservation.WithRoomType(rt))
	}
	if req.MinPrice != nil || req.MaxPrice != nil {
		opts = append(opts, reservation.WithPriceRange(req.MinPrice, req.MaxPrice))
	}

	return reservation.NewSearchCriteria(checkIn, checkOut, req.Guests, opts...)
}

func sessionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid session ID"})
		return uuid.Nil, false
	}
	return id, true
}
