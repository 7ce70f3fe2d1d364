package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoute(r chi.Router, routeHandler *adaptor.RouteHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/routes", routeHandler.ListRoutes)           // GET /api/routes
	r.Get("/api/routes/{id}/stops", routeHandler.ListStops) // GET /api/routes/{id}/stops
	r.Get("/api/companies", routeHandler.ListCompanies)     // GET /api/companies
}
