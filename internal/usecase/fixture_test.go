package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/messaging"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.BookingConfirmedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, payload.(messaging.BookingConfirmedEvent))
	return nil
}

type stubGateway struct {
	result ChargeResult
	err    error
	calls  int
}

func (g *stubGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	g.calls++
	return g.result, g.err
}

type fixture struct {
	store     *memStore
	clock     *fakeClock
	config    *utils.Config
	gateway   *stubGateway
	publisher *recordingPublisher
	svc       *Service
	trip      *entity.Trip
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			HoldMinutes:     5,
			CodeMaxAttempts: 10,
		},
		Payment: utils.PaymentConfig{
			Provider:    "orange_money",
			SuccessRate: 0.9,
		},
		Kafka: utils.KafkaConfig{
			BookingTopic: "booking-events",
		},
	}
}

// newFixture seeds one trip with seats A1..A4 priced at 15000.
func newFixture(t *testing.T, configure ...func(*utils.Config)) *fixture {
	t.Helper()

	config := testConfig()
	for _, fn := range configure {
		fn(config)
	}

	f := &fixture{
		store:     newMemStore(),
		clock:     &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
		config:    config,
		gateway:   &stubGateway{result: ChargeResult{Success: true, TransactionID: "OM-1772352000000-k3x9q2m7a"}},
		publisher: &recordingPublisher{},
	}

	now := f.clock.Now()
	f.trip = &entity.Trip{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		FromCity:      "Bamako",
		ToCity:        "Kayes",
		OperatorName:  "Diarra Transport",
		DepartureTime: now.Add(26 * time.Hour),
		ArrivalTime:   now.Add(34 * time.Hour),
		Price:         15000,
		BusType:       defaultBusType,
	}
	repo := f.store.repository()
	require.NoError(t, repo.Trip.CreateWithSeats(context.Background(), f.trip, BuildSeatGrid(f.trip.ID, 4, 1, now)))

	f.svc = newService(repo, nil, f.publisher, f.gateway, config, f.clock.Now, zap.NewNop())
	return f
}

func (f *fixture) tripID() string {
	return f.trip.ID.String()
}

func (f *fixture) status(number string) entity.SeatStatus {
	return f.store.seatStatus(f.trip.ID, number)
}
