package usecase

import (
	"context"
	"math/rand/v2"

	"bus-booking/pkg/utils"

	"github.com/google/uuid"
)

type ChargeRequest struct {
	BookingID   uuid.UUID
	Amount      int64
	PhoneNumber string
}

// ChargeResult carries a transaction id only for successful charges.
type ChargeResult struct {
	Success       bool
	TransactionID string
}

type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// simulatedGateway approves a configured fraction of mobile money charges.
type simulatedGateway struct {
	successRate float64
	roll        func() float64
	now         Clock
}

func NewSimulatedGateway(successRate float64, clock Clock) PaymentGateway {
	return &simulatedGateway{
		successRate: successRate,
		roll:        rand.Float64,
		now:         clock,
	}
}

func (g *simulatedGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return ChargeResult{}, err
	}

	if g.roll() >= g.successRate {
		return ChargeResult{Success: false}, nil
	}

	return ChargeResult{
		Success:       true,
		TransactionID: utils.GenerateTransactionID("OM", g.now()),
	}, nil
}
