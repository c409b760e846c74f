package handlers

import (
	"net/http"

	"github.com/driveloop/carrental/internal/cars"
)

// CarsHandler serves the public car catalogue
type CarsHandler struct {
	service *cars.Service
}

// NewCarsHandler creates a new cars handler
func NewCarsHandler(service *cars.Service) *CarsHandler {
	return &CarsHandler{service: service}
}

// List returns every car currently flagged available
func (h *CarsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	available, err := h.service.AvailableCars(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, available)
}
