package usecase

import (
	"context"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Clock is injected so hold expiry can be tested without sleeping.
type Clock func() time.Time

// TripCache is the read-through cache in front of the trip catalog.
// GetTrip returns nil, nil on a miss.
type TripCache interface {
	GetTrip(ctx context.Context, id uuid.UUID) (*entity.Trip, error)
	SetTrip(ctx context.Context, trip *entity.Trip) error
}

// Publisher sends domain events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type Service struct {
	Trip      TripService
	Route     RouteService
	Inventory InventoryService
	Booking   BookingService
	Payment   PaymentService
	Notifier  NotificationService
}

// NewService wires every use case. cache and publisher may be nil when
// Redis or Kafka are not configured.
func NewService(repo *repository.Repository, cache TripCache, publisher Publisher, config *utils.Config, log *zap.Logger) *Service {
	clock := Clock(time.Now)
	gateway := NewSimulatedGateway(config.Payment.SuccessRate, clock)
	return newService(repo, cache, publisher, gateway, config, clock, log)
}

func newService(repo *repository.Repository, cache TripCache, publisher Publisher, gateway PaymentGateway, config *utils.Config, clock Clock, log *zap.Logger) *Service {
	catalog := newTripCatalog(repo.Trip, cache, log)

	return &Service{
		Trip:      NewTripService(repo, catalog, clock, log),
		Route:     NewRouteService(repo, log),
		Inventory: NewInventoryService(repo, catalog, config.Booking, clock, log),
		Booking:   NewBookingService(repo, catalog, config.Booking, clock, log),
		Payment:   NewPaymentService(repo, catalog, gateway, publisher, config, clock, log),
		Notifier:  NewNotificationService(NewLogSMSSender(log), log),
	}
}

func validationFailed(errs map[string]string) error {
	return ValidationError{Fields: errs}
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ValidationError{Fields: map[string]string{field: "Must be a valid UUID"}}
	}
	return id, nil
}

// parseHoldToken returns nil for an empty token.
func parseHoldToken(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	token, err := parseID("hold_token", value)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
