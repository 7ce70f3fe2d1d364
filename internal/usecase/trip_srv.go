package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSeatRows    = 10
	defaultSeatColumns = 4
	defaultBusType     = "Standard 40 places"
)

type TripService interface {
	GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error)

	// Admin endpoints
	CreateTrip(ctx context.Context, req *request.CreateTripRequest) (*response.TripResponse, error)
}

// tripCatalog answers trip lookups for every use case, cache first.
type tripCatalog struct {
	repo  repository.TripRepository
	cache TripCache
	log   *zap.Logger
}

func newTripCatalog(repo repository.TripRepository, cache TripCache, log *zap.Logger) *tripCatalog {
	return &tripCatalog{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("component", "trip_catalog")),
	}
}

// find returns NotFoundError when the trip does not exist. Cache failures
// are logged and fall through to the database.
func (c *tripCatalog) find(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	if c.cache != nil {
		trip, err := c.cache.GetTrip(ctx, id)
		if err != nil {
			c.log.Warn("Trip cache read failed", zap.Error(err), zap.String("trip_id", id.String()))
		} else if trip != nil {
			return trip, nil
		}
	}

	trip, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find trip: %w", err)
	}
	if trip == nil {
		return nil, NotFoundError{Resource: "trip", ID: id.String()}
	}

	c.remember(ctx, trip)
	return trip, nil
}

func (c *tripCatalog) remember(ctx context.Context, trip *entity.Trip) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SetTrip(ctx, trip); err != nil {
		c.log.Warn("Trip cache write failed", zap.Error(err), zap.String("trip_id", trip.ID.String()))
	}
}

type tripService struct {
	repo    *repository.Repository
	catalog *tripCatalog
	now     Clock
	log     *zap.Logger
}

func NewTripService(repo *repository.Repository, catalog *tripCatalog, clock Clock, log *zap.Logger) TripService {
	return &tripService{
		repo:    repo,
		catalog: catalog,
		now:     clock,
		log:     log.With(zap.String("service", "trip")),
	}
}

func (s *tripService) GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error) {
	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}

	trip, err := s.catalog.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.TripToResponse(trip)
	s.attachCatalog(ctx, &resp)
	return &resp, nil
}

// attachCatalog adds the road and operator details the catalog knows about.
// Lookup failures only cost the extra detail.
func (s *tripService) attachCatalog(ctx context.Context, resp *response.TripResponse) {
	route, err := s.repo.Route.FindByCities(ctx, resp.FromCity, resp.ToCity)
	if err != nil {
		s.log.Warn("Route lookup failed", zap.Error(err), zap.String("trip_id", resp.ID))
	} else if route != nil {
		r := response.RouteToResponse(route)
		resp.Route = &r
	}

	company, err := s.repo.Company.FindByName(ctx, resp.OperatorName)
	if err != nil {
		s.log.Warn("Company lookup failed", zap.Error(err), zap.String("trip_id", resp.ID))
	} else if company != nil {
		c := response.CompanyToResponse(company)
		resp.Company = &c
	}
}

func (s *tripService) CreateTrip(ctx context.Context, req *request.CreateTripRequest) (*response.TripResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create trip validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	now := s.now()
	trip := &entity.Trip{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		OperatorName:  req.OperatorName,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		BusType:       req.BusType,
	}
	if trip.BusType == "" {
		trip.BusType = defaultBusType
	}

	rows, columns := req.Rows, req.Columns
	if rows == 0 {
		rows = defaultSeatRows
	}
	if columns == 0 {
		columns = defaultSeatColumns
	}
	seats := BuildSeatGrid(trip.ID, rows, columns, now)

	if err := s.repo.Trip.CreateWithSeats(ctx, trip, seats); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	s.catalog.remember(ctx, trip)

	s.log.Info("Trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.String("route", trip.FromCity+" - "+trip.ToCity),
		zap.Int("seats", len(seats)),
	)

	resp := response.TripToResponse(trip)
	return &resp, nil
}

// BuildSeatGrid lays out rows x columns available seats numbered by column
// letter then row: A1, B1, C1, D1, A2, ...
func BuildSeatGrid(tripID uuid.UUID, rows, columns int, now time.Time) []*entity.Seat {
	seats := make([]*entity.Seat, 0, rows*columns)
	for row := 1; row <= rows; row++ {
		for col := 1; col <= columns; col++ {
			seats = append(seats, &entity.Seat{
				ID:        uuid.New(),
				TripID:    tripID,
				Number:    fmt.Sprintf("%c%d", 'A'+col-1, row),
				Row:       row,
				Column:    col,
				Status:    entity.SeatStatusAvailable,
				UpdatedAt: now,
			})
		}
	}
	return seats
}
