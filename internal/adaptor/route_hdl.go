package adaptor

import (
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RouteHandler struct {
	routes usecase.RouteService
	log    *zap.Logger
}

func NewRouteHandler(routes usecase.RouteService, log *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routes: routes,
		log:    log.With(zap.String("handler", "route")),
	}
}

// ListRoutes handles GET /api/routes
func (h *RouteHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.routes.ListRoutes(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list routes")
		return
	}

	utils.ResponseSuccess(w, "success", routes)
}

// ListStops handles GET /api/routes/{id}/stops
func (h *RouteHandler) ListStops(w http.ResponseWriter, r *http.Request) {
	stops, err := h.routes.ListStops(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list stops")
		return
	}

	utils.ResponseSuccess(w, "success", stops)
}

// ListCompanies handles GET /api/companies
func (h *RouteHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.routes.ListCompanies(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list companies")
		return
	}

	utils.ResponseSuccess(w, "success", companies)
}
