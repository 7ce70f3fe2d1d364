package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TripHandler struct {
	trips     usecase.TripService
	inventory usecase.InventoryService
	bookings  usecase.BookingService
	log       *zap.Logger
}

func NewTripHandler(trips usecase.TripService, inventory usecase.InventoryService, bookings usecase.BookingService, log *zap.Logger) *TripHandler {
	return &TripHandler{
		trips:     trips,
		inventory: inventory,
		bookings:  bookings,
		log:       log.With(zap.String("handler", "trip")),
	}
}

// GetTrip handles GET /api/trips/{id}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get trip")
		return
	}

	utils.ResponseSuccess(w, "success", trip)
}

// ListSeats handles GET /api/trips/{id}/seats
func (h *TripHandler) ListSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.inventory.ListSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// HoldSeats handles POST /api/trips/{id}/hold
func (h *TripHandler) HoldSeats(w http.ResponseWriter, r *http.Request) {
	var req request.HoldSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	hold, err := h.inventory.HoldSeats(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "hold seats")
		return
	}

	utils.ResponseSuccess(w, "Seats held", hold)
}

// ReleaseSeats handles POST /api/trips/{id}/release
func (h *TripHandler) ReleaseSeats(w http.ResponseWriter, r *http.Request) {
	var req request.ReleaseSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	released, err := h.inventory.ReleaseSeats(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "release seats")
		return
	}

	utils.ResponseSuccess(w, "Seats released", released)
}

// ==================== ADMIN METHODS ====================

// CreateTrip handles POST /api/admin/trips (admin only)
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	trip, err := h.trips.CreateTrip(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create trip")
		return
	}

	utils.ResponseCreated(w, "Trip created", trip)
}

// ListTripBookings handles GET /api/admin/trips/{id}/bookings (admin only)
func (h *TripHandler) ListTripBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.bookings.ListTripBookings(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list trip bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
