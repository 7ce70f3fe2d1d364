package repository

import (
	"context"
	"fmt"

	"bus-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Trip    TripRepository
	Seat    SeatRepository
	Booking BookingRepository
	Payment PaymentRepository
	Route   RouteRepository
	Company CompanyRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Trip:    NewTripRepository(db, log),
		Seat:    NewSeatRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Payment: NewPaymentRepository(db, log),
		Route:   NewRouteRepository(db, log),
		Company: NewCompanyRepository(db, log),
	}
}

// inTx runs fn inside one transaction. Any error from fn rolls the whole
// unit back before it is returned, so callers never observe partial writes.
func inTx(ctx context.Context, db database.PgxIface, log *zap.Logger, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// collectStrings drains a single text column result set.
func collectStrings(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}

// missing returns the requested values absent from got, keeping request order.
func missing(requested, got []string) []string {
	seen := make(map[string]struct{}, len(got))
	for _, s := range got {
		seen[s] = struct{}{}
	}

	var out []string
	for _, s := range requested {
		if _, ok := seen[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
