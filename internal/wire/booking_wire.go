package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, config *utils.Config, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/bookings", bookingHandler.CreateBooking)
	r.Get("/api/bookings/{code}", bookingHandler.GetBookingByCode)

	// ==================== ADMIN ROUTES ====================
	r.With(middleware.AdminKey(config.Admin.KeyHash, log)).
		Put("/api/admin/bookings/{id}/cancel", bookingHandler.CancelBooking)
}
