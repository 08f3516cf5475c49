package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stayline/guest-portal/internal/domain/reservation"
	"github.com/stayline/guest-portal/internal/hotelapi"
)

// respondError translates the portal error taxonomy into an HTTP response.
//
// An unauthenticated rejection from the collaborator is forwarded with
// force_logout so the frontend clears its session; nothing can be recovered
// locally. Cancellation is not an error to report at all.
func respondError(c *gin.Context, err error) {
	status, message := errorStatus(c, err)
	if status == 0 {
		return
	}
	body := gin.H{"message": message}
	if status == http.StatusUnauthorized {
		body["force_logout"] = true
	}
	c.JSON(status, body)
}

// errorStatus maps an error to its HTTP status and user message. A zero
// status means the caller's context was cancelled and nothing should be
// written.
func errorStatus(c *gin.Context, err error) (int, string) {
	if hotelapi.IsCanceled(err) {
		c.Abort()
		return 0, ""
	}
	if errors.Is(err, hotelapi.ErrUnauthenticated) {
		return http.StatusUnauthorized, "Unauthenticated."
	}

	var validationErr *reservation.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, validationErr.Message
	}
	if errors.Is(err, reservation.ErrNoNights) {
		return http.StatusUnprocessableEntity, err.Error()
	}

	var stateErr *reservation.InvalidStateError
	if errors.As(err, &stateErr) {
		return http.StatusConflict, stateErr.Error()
	}
	var conflictErr *hotelapi.ConflictError
	if errors.As(err, &conflictErr) {
		return http.StatusConflict, conflictErr.Error()
	}
	var requestErr *hotelapi.RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Status, requestErr.Error()
	}
	var transportErr *hotelapi.TransportError
	if errors.As(err, &transportErr) {
		return http.StatusBadGateway, "hotel service is temporarily unavailable"
	}
	return http.StatusInternalServerError, "internal server error"
}

// int64Param extracts a numeric path parameter, answering 400 on garbage.
func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return v, true
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func respondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
