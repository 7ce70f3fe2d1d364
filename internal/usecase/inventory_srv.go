package usecase

import (
	"context"
	"errors"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService owns seat availability for a trip: holds, releases and
// hold expiry. Every transition is a conditional update in storage, so any
// number of server instances may serve the same trip.
type InventoryService interface {
	HoldSeats(ctx context.Context, tripID string, req *request.HoldSeatsRequest) (*response.HoldResponse, error)
	ReleaseSeats(ctx context.Context, tripID string, req *request.ReleaseSeatsRequest) (*response.ReleaseResponse, error)
	ListSeats(ctx context.Context, tripID string) (*response.SeatMapResponse, error)

	// Expiry
	ExpireStaleHolds(ctx context.Context, tripID uuid.UUID) (int64, error)
	ExpireAllStaleHolds(ctx context.Context) (int64, error)
}

type inventoryService struct {
	repo    *repository.Repository
	catalog *tripCatalog
	config  utils.BookingConfig
	now     Clock
	log     *zap.Logger
}

func NewInventoryService(repo *repository.Repository, catalog *tripCatalog, config utils.BookingConfig, clock Clock, log *zap.Logger) InventoryService {
	return &inventoryService{
		repo:    repo,
		catalog: catalog,
		config:  config,
		now:     clock,
		log:     log.With(zap.String("service", "inventory")),
	}
}

func (s *inventoryService) HoldSeats(ctx context.Context, tripID string, req *request.HoldSeatsRequest) (*response.HoldResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Hold seats validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.find(ctx, id); err != nil {
		return nil, err
	}

	now := s.now()
	expiry := now.Add(s.config.HoldDuration())
	token := uuid.New()

	err = s.repo.Seat.Hold(ctx, id, req.SeatNumbers, token, now, expiry)
	if err != nil {
		var conflict *repository.SeatConflictError
		if errors.As(err, &conflict) {
			s.log.Info("Seats unavailable for hold",
				zap.String("trip_id", tripID),
				zap.Strings("unavailable", conflict.Seats),
			)
			return nil, SeatUnavailableError{Seats: conflict.Seats}
		}
		return nil, fmt.Errorf("hold seats: %w", err)
	}

	s.log.Info("Seats held",
		zap.String("trip_id", tripID),
		zap.Strings("seats", req.SeatNumbers),
		zap.Time("expiry", expiry),
	)

	return &response.HoldResponse{
		TripID:    id.String(),
		Seats:     req.SeatNumbers,
		Expiry:    expiry,
		HoldToken: token.String(),
	}, nil
}

// ReleaseSeats gives held seats back before their expiry. Seats that are not
// held (or held under another token) are left as they are.
func (s *inventoryService) ReleaseSeats(ctx context.Context, tripID string, req *request.ReleaseSeatsRequest) (*response.ReleaseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Release seats validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}
	token, err := parseHoldToken(req.HoldToken)
	if err != nil {
		return nil, err
	}
	if token == nil && s.config.RequireHoldToken {
		return nil, ValidationError{Fields: map[string]string{"hold_token": "This field is required"}}
	}
	if _, err := s.catalog.find(ctx, id); err != nil {
		return nil, err
	}

	released, err := s.repo.Seat.Release(ctx, id, req.SeatNumbers, token, s.now())
	if err != nil {
		return nil, fmt.Errorf("release seats: %w", err)
	}

	s.log.Info("Seats released",
		zap.String("trip_id", tripID),
		zap.Strings("requested", req.SeatNumbers),
		zap.Strings("released", released),
	)

	if released == nil {
		released = []string{}
	}
	return &response.ReleaseResponse{TripID: id.String(), Released: released}, nil
}

// ListSeats expires stale holds before reading, so a hold is never reported
// once its expiry has passed.
func (s *inventoryService) ListSeats(ctx context.Context, tripID string) (*response.SeatMapResponse, error) {
	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.find(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.ExpireStaleHolds(ctx, id); err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByTripID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}

	resp := &response.SeatMapResponse{
		TripID: id.String(),
		Seats:  make([]response.SeatResponse, 0, len(seats)),
	}
	for _, seat := range seats {
		if seat.Status == entity.SeatStatusAvailable {
			resp.Available++
		}
		resp.Seats = append(resp.Seats, response.SeatToResponse(seat))
	}

	return resp, nil
}

func (s *inventoryService) ExpireStaleHolds(ctx context.Context, tripID uuid.UUID) (int64, error) {
	expired, err := s.repo.Seat.ExpireStaleHolds(ctx, tripID, s.now())
	if err != nil {
		return 0, fmt.Errorf("expire stale holds: %w", err)
	}
	if expired > 0 {
		s.log.Debug("Stale holds expired", zap.String("trip_id", tripID.String()), zap.Int64("seats", expired))
	}
	return expired, nil
}

func (s *inventoryService) ExpireAllStaleHolds(ctx context.Context) (int64, error) {
	expired, err := s.repo.Seat.ExpireAllStaleHolds(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("expire stale holds: %w", err)
	}
	if expired > 0 {
		s.log.Info("Stale holds expired", zap.Int64("seats", expired))
	}
	return expired, nil
}
