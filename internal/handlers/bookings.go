package handlers

import (
	"net/http"

	"github.com/driveloop/carrental/internal/booking"
	"github.com/driveloop/carrental/internal/models"
)

// BookingsHandler handles booking lifecycle requests
type BookingsHandler struct {
	service *booking.Service
}

// NewBookingsHandler creates a new bookings handler
func NewBookingsHandler(service *booking.Service) *BookingsHandler {
	return &BookingsHandler{service: service}
}

// Search returns cars at a location that are free over the requested range.
// Public: no authentication required.
func (h *BookingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SearchRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		respondError(w, err)
		return
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		respondError(w, err)
		return
	}

	cars, err := h.service.SearchAvailableCars(r.Context(), req.Location, pickup, ret)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, cars)
}

// Create books a car for the authenticated renter
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actorID, _, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.CreateBookingRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		respondError(w, err)
		return
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		respondError(w, err)
		return
	}

	b, err := h.service.Create(r.Context(), req.Car, pickup, ret, actorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, b)
}

// ListMine returns the authenticated user's bookings, newest first
func (h *BookingsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	bookings, err := h.service.ListForRenter(r.Context(), actorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, bookings)
}

// ListForOwner returns bookings against the authenticated owner's cars
func (h *BookingsHandler) ListForOwner(w http.ResponseWriter, r *http.Request) {
	actorID, claims, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	bookings, err := h.service.ListForOwner(r.Context(), actorID, claims.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, bookings)
}

// ChangeStatus lets the booking's owner move it through its lifecycle
func (h *BookingsHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actorID, _, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req models.ChangeStatusRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.ChangeStatus(r.Context(), req.BookingID, models.BookingStatus(req.Status), actorID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "status updated")
}
