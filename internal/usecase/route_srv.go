package usecase

import (
	"context"
	"fmt"

	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"

	"go.uber.org/zap"
)

// RouteService exposes the read-only network catalog.
type RouteService interface {
	ListRoutes(ctx context.Context) ([]response.RouteResponse, error)
	ListStops(ctx context.Context, routeID string) ([]response.StopResponse, error)
	ListCompanies(ctx context.Context) ([]response.CompanyResponse, error)
}

type routeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRouteService(repo *repository.Repository, log *zap.Logger) RouteService {
	return &routeService{
		repo: repo,
		log:  log.With(zap.String("service", "route")),
	}
}

func (s *routeService) ListRoutes(ctx context.Context) ([]response.RouteResponse, error) {
	routes, err := s.repo.Route.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	out := make([]response.RouteResponse, 0, len(routes))
	for _, route := range routes {
		out = append(out, response.RouteToResponse(route))
	}
	return out, nil
}

// ListStops returns the stops of a route in travel order. An unknown route
// is NotFoundError rather than an empty list.
func (s *routeService) ListStops(ctx context.Context, routeID string) ([]response.StopResponse, error) {
	id, err := parseID("route_id", routeID)
	if err != nil {
		return nil, err
	}

	route, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	if route == nil {
		return nil, NotFoundError{Resource: "route", ID: routeID}
	}

	stops, err := s.repo.Route.FindStops(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}

	out := make([]response.StopResponse, 0, len(stops))
	for _, stop := range stops {
		out = append(out, response.StopToResponse(stop))
	}
	return out, nil
}

func (s *routeService) ListCompanies(ctx context.Context) ([]response.CompanyResponse, error) {
	companies, err := s.repo.Company.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	out := make([]response.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, response.CompanyToResponse(company))
	}
	return out, nil
}
