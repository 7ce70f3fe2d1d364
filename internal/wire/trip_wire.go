package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTrip(r chi.Router, tripHandler *adaptor.TripHandler, config *utils.Config, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/trips/{id}", func(r chi.Router) {
		r.Get("/", tripHandler.GetTrip)              // GET /api/trips/{id}
		r.Get("/seats", tripHandler.ListSeats)       // GET /api/trips/{id}/seats
		r.Post("/hold", tripHandler.HoldSeats)       // POST /api/trips/{id}/hold
		r.Post("/release", tripHandler.ReleaseSeats) // POST /api/trips/{id}/release
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/trips", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin.KeyHash, log))

		r.Post("/", tripHandler.CreateTrip)                   // POST /api/admin/trips
		r.Get("/{id}/bookings", tripHandler.ListTripBookings) // GET /api/admin/trips/{id}/bookings?page=1&per_page=10
	})
}
