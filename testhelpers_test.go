//go:build integration

package main_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stayline/guest-portal/internal/application"
	"github.com/stayline/guest-portal/internal/handler"
	"github.com/stayline/guest-portal/internal/hotelapi"
	"github.com/stayline/guest-portal/internal/middleware"
)

// fakeHotel is a scripted stand-in for the hotel REST API. State is mutable
// so a test can flip room availability mid-flow.
type fakeHotel struct {
	mu sync.Mutex

	rooms        []map[string]any
	freeRoomIDs  map[int64]bool
	bookings     []map[string]any
	nextID       int64
	lastAuth     string
	rejectStatus int
}

func newFakeHotel() *fakeHotel {
	return &fakeHotel{
		rooms: []map[string]any{
			{"id": 7, "number": "204", "type": "Deluxe", "price_per_night": 2000.0, "capacity": 3, "status": "Available"},
			{"id": 8, "number": "305", "type": "Suite", "price_per_night": 5000.0, "capacity": 4, "status": "Available"},
		},
		freeRoomIDs: map[int64]bool{7: true, 8: true},
		nextID:      100,
	}
}

func (f *fakeHotel) setFree(roomID int64, free bool) {
	f.mu.Lock()
	f.freeRoomIDs[roomID] = free
	f.mu.Unlock()
}

func (f *fakeHotel) rejectAll(status int) {
	f.mu.Lock()
	f.rejectStatus = status
	f.mu.Unlock()
}

func (f *fakeHotel) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.lastAuth = r.Header.Get("Authorization")
			reject := f.rejectStatus
			f.mu.Unlock()
			if reject != 0 {
				writeJSON(w, reject, map[string]string{"message": "Unauthenticated."})
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/api/guest/rooms", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.rooms)
	}))

	mux.HandleFunc("/api/guest/rooms/available", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		free := make([]map[string]any, 0)
		for _, room := range f.rooms {
			id := int64(room["id"].(int))
			if f.freeRoomIDs[id] {
				free = append(free, room)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"available_rooms": free})
	}))

	mux.HandleFunc("/api/guest/rooms/check-availability", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		roomID, _ := strconv.ParseInt(r.URL.Query().Get("room_id"), 10, 64)
		writeJSON(w, http.StatusOK, map[string]bool{"available": f.freeRoomIDs[roomID]})
	}))

	mux.HandleFunc("/api/guest/bookings", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, f.bookings)
			return
		}

		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		roomID := int64(req["room_id"].(float64))
		if !f.freeRoomIDs[roomID] {
			writeJSON(w, http.StatusConflict, map[string]string{
				"message": "Room is not available for the selected dates",
			})
			return
		}

		f.nextID++
		booking := map[string]any{
			"id":             f.nextID,
			"code":           "BK-100",
			"user_id":        req["user_id"],
			"room_id":        req["room_id"],
			"check_in":       req["check_in"],
			"check_out":      req["check_out"],
			"guests":         req["guests"],
			"total_amount":   req["total_amount"],
			"tax_amount":     req["tax_amount"],
			"status":         "pending",
			"payment_status": "pending",
		}
		f.bookings = append(f.bookings, booking)
		f.freeRoomIDs[roomID] = false
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Booking created successfully",
			"booking": booking,
		})
	}))

	mux.HandleFunc("/api/hotel-info", guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"hotel_name":      "Stayline Grand",
			"currency":        "USD",
			"currency_symbol": "$",
			"tax_rate":        12.0,
		})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newPortal wires the portal router against the fake collaborator the way
// cmd/server does, minus redis and CORS.
func newPortal(t *testing.T, hotel *fakeHotel) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	srv := hotel.server(t)
	client := hotelapi.NewClient(srv.URL, 5*time.Second, logger)

	availability := application.NewAvailabilityService(client, logger)
	hotelInfo := application.NewHotelInfoService(client, nil, time.Minute, logger)
	reservations := application.NewReservationService(availability, client, hotelInfo, logger)
	bookings := application.NewBookingService(client, logger)

	router := gin.New()
	router.Use(middleware.Recovery(logger), middleware.TokenPassthrough())

	api := router.Group("/api")
	handler.NewGuestHandler(reservations, bookings, hotelInfo).RegisterRoutes(api)
	return router
}
