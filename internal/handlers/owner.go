package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/driveloop/carrental/internal/apperr"
	"github.com/driveloop/carrental/internal/cars"
	"github.com/driveloop/carrental/internal/dashboard"
	"github.com/driveloop/carrental/internal/models"
	"github.com/driveloop/carrental/internal/users"
)

// OwnerHandler handles owner-facing listing management and analytics
type OwnerHandler struct {
	cars      *cars.Service
	profile   *users.Service
	dashboard *dashboard.Aggregator
}

// NewOwnerHandler creates a new owner handler
func NewOwnerHandler(carService *cars.Service, profile *users.Service, agg *dashboard.Aggregator) *OwnerHandler {
	return &OwnerHandler{cars: carService, profile: profile, dashboard: agg}
}

// ChangeRole promotes the authenticated user to owner
func (h *OwnerHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, claims, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.profile.ChangeRoleToOwner(r.Context(), claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "now you can list cars")
}

// AddCar lists a new car. The request is a multipart form carrying a
// carData JSON field and an image file.
func (h *OwnerHandler) AddCar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actorID, _, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	image, imageName, err := readImage(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var attrs models.CarAttributes
	if err := json.Unmarshal([]byte(r.FormValue("carData")), &attrs); err != nil {
		respondError(w, apperr.Validationf("invalid carData payload"))
		return
	}
	if err := validate.Struct(attrs); err != nil {
		respondError(w, apperr.Validationf("%s", err.Error()))
		return
	}

	car, err := h.cars.Add(r.Context(), actorID, attrs, image, imageName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, car)
}

// ListCars returns all cars belonging to the authenticated owner
func (h *OwnerHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	owned, err := h.cars.OwnerCars(r.Context(), actorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, owned)
}

type carIDRequest struct {
	CarID string `json:"car_id" validate:"required"`
}

// ToggleCar flips the availability flag of one of the owner's cars
func (h *OwnerHandler) ToggleCar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actorID, _, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req carIDRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.cars.ToggleAvailability(r.Context(), req.CarID, actorID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "availability toggled")
}

// DeleteCar soft-deletes one of the owner's cars
func (h *OwnerHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actorID, _, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req carIDRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.cars.Remove(r.Context(), req.CarID, actorID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "car removed")
}

// Dashboard returns the owner's summary statistics
func (h *OwnerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actorID, claims, err := actor(r)
	if err != nil {
		respondError(w, err)
		return
	}

	data, err := h.dashboard.Data(r.Context(), actorID, claims.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, data)
}
