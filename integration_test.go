//go:build integration

package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer guest-token-123")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

// TestGuestReservationFlow walks the whole happy path over HTTP: open a
// session, search availability, select a room, submit the form, and see the
// confirmed booking with the collaborator's totals.
func TestGuestReservationFlow(t *testing.T) {
	hotel := newFakeHotel()
	router := newPortal(t, hotel)

	rec, session := doJSON(t, router, http.MethodPost, "/api/guest/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := session["session_id"].(string)
	assert.Equal(t, "browsing", session["state"])

	checkIn := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	rec, view := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/guest/sessions/%s/search", sessionID),
		map[string]any{"check_in": checkIn, "check_out": checkOut, "guests": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, view["availability"])

	rec, view = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/guest/sessions/%s/select", sessionID),
		map[string]any{"room_id": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "form_open", view["state"])

	quote := view["quote"].(map[string]any)
	assert.Equal(t, 2.0, quote["nights"])
	assert.Equal(t, 4000.0, quote["subtotal"])
	assert.Equal(t, 480.0, quote["tax_amount"])
	assert.Equal(t, 4480.0, quote["total_amount"])

	rec, view = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/guest/sessions/%s/submit", sessionID),
		map[string]any{
			"user_id": 9, "check_in": checkIn, "check_out": checkOut,
			"guests": 2, "special_requests": "late arrival",
		})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "confirmed", view["state"])
	assert.Nil(t, view["draft"])

	booking := view["booking"].(map[string]any)
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, 4480.0, booking["total_amount"])

	// The caller's bearer token was forwarded to the collaborator.
	assert.Equal(t, "Bearer guest-token-123", hotel.lastAuth)
}

// TestReservationConflictOverHTTP flips the room to taken between the search
// and the selection: the portal answers 409, returns the guest to browsing,
// and the refreshed availability no longer offers the room.
func TestReservationConflictOverHTTP(t *testing.T) {
	hotel := newFakeHotel()
	router := newPortal(t, hotel)

	_, session := doJSON(t, router, http.MethodPost, "/api/guest/sessions", nil)
	sessionID := session["session_id"].(string)

	checkIn := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	rec, _ := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/guest/sessions/%s/search", sessionID),
		map[string]any{"check_in": checkIn, "check_out": checkOut, "guests": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	// Another guest takes the room after the search.
	hotel.setFree(7, false)

	rec, payload := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/guest/sessions/%s/select", sessionID),
		map[string]any{"room_id": 7})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, payload["message"], "204")

	view := payload["session"].(map[string]any)
	assert.Equal(t, "browsing", view["state"])

	availability := view["availability"].(map[string]any)
	room7 := availability["7"].(map[string]any)
	assert.Equal(t, false, room7["available"])
	room8 := availability["8"].(map[string]any)
	assert.Equal(t, true, room8["available"])
}

// TestUnauthenticatedForcesLogout verifies that a collaborator auth rejection
// surfaces as 401 with the force_logout marker.
func TestUnauthenticatedForcesLogout(t *testing.T) {
	hotel := newFakeHotel()
	router := newPortal(t, hotel)

	hotel.rejectAll(http.StatusUnauthorized)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/guest/bookings", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, true, payload["force_logout"])
	assert.Equal(t, "Unauthenticated.", payload["message"])
}
