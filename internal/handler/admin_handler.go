package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayline/guest-portal/internal/application"
	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// AdminHandler exposes the back-office surface: the booking management list
// with its lifecycle mutations, and the reports proxy.
type AdminHandler struct {
	bookings *application.BookingService
	reports  *application.ReportService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService, reports *application.ReportService) *AdminHandler {
	return &AdminHandler{bookings: bookings, reports: reports}
}

// RegisterRoutes registers the admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/bookings", h.ListBookings)
		admin.PUT("/bookings/:id", h.UpdateBooking)
		admin.GET("/reports", h.Report)
	}
}

// ListBookings handles GET /api/admin/bookings with optional search and
// status filter query parameters.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	term := c.Query("search")
	status := c.Query("status")
	if term != "" || (status != "" && status != "all") {
		bookings = reservation.FilterBookings(bookings, term, status)
	}
	respondOK(c, bookings)
}

// updateBookingRequest is the partial admin mutation body. Exactly one of
// the two axes is exercised per request: a status transition, or a payment
// update with its metadata.
type updateBookingRequest struct {
	Status               *string `json:"status"`
	PaymentStatus        *string `json:"payment_status"`
	PaymentDate          *string `json:"payment_date"`
	RefundDate           *string `json:"refund_date"`
	PaymentReference     *string `json:"payment_reference"`
	PaymentMethod        *string `json:"payment_method"`
	PaymentMethodAccount *string `json:"payment_method_account"`
}

// UpdateBooking handles PUT /api/admin/bookings/:id. The response carries
// the collaborator message and the wholesale-refetched booking list.
func (h *AdminHandler) UpdateBooking(c *gin.Context) {
	bookingID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var (
		message  string
		bookings []reservation.Booking
		err      error
	)
	switch {
	case req.Status != nil:
		var status reservation.BookingStatus
		status, err = reservation.ParseBookingStatus(*req.Status)
		if err == nil {
			message, bookings, err = h.bookings.UpdateStatus(c.Request.Context(), bookingID, status)
		} else {
			err = reservation.NewValidationError(err.Error())
		}
	default:
		var patch reservation.BookingPatch
		patch, err = paymentPatch(req)
		if err == nil {
			message, bookings, err = h.bookings.UpdatePayment(c.Request.Context(), bookingID, patch)
		}
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": message, "bookings": bookings})
}

// Report handles GET /api/admin/reports?time_range=X. A result superseded by
// a newer time range is treated like a cancellation: the stale response is
// dropped without a user-visible error.
func (h *AdminHandler) Report(c *gin.Context) {
	timeRange := c.DefaultQuery("time_range", "30d")

	report, err := h.reports.Fetch(c.Request.Context(), timeRange)
	if err != nil {
		if errors.Is(err, application.ErrStaleQuery) {
			c.Abort()
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, report)
}

func paymentPatch(req updateBookingRequest) (reservation.BookingPatch, error) {
	var patch reservation.BookingPatch

	if req.PaymentStatus != nil {
		status, err := reservation.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return reservation.BookingPatch{}, reservation.NewValidationError(err.Error())
		}
		patch.PaymentStatus = &status
	}
	if req.PaymentDate != nil {
		d, err := reservation.ParseDate(*req.PaymentDate)
		if err != nil {
			return reservation.BookingPatch{}, reservation.NewValidationError(err.Error())
		}
		patch.PaymentDate = &d
	}
	if req.RefundDate != nil {
		d, err := reservation.ParseDate(*req.RefundDate)
		if err != nil {
			return reservation.BookingPatch{}, reservation.NewValidationError(err.Error())
		}
		patch.RefundDate = &d
	}
	patch.PaymentReference = req.PaymentReference
	patch.PaymentMethod = req.PaymentMethod
	patch.PaymentMethodAccount = req.PaymentMethodAccount

	return patch, nil
}
