package repository

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SeatRepository owns the per-seat state machine. Every transition is a
// single UPDATE guarded by the expected current status, so the database row
// lock is the only coordination between concurrent requests.
type SeatRepository interface {
	FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*entity.Seat, error)

	// Transitions
	Hold(ctx context.Context, tripID uuid.UUID, numbers []string, token uuid.UUID, now, until time.Time) error
	Release(ctx context.Context, tripID uuid.UUID, numbers []string, token *uuid.UUID, now time.Time) ([]string, error)
	ExpireStaleHolds(ctx context.Context, tripID uuid.UUID, now time.Time) (int64, error)
	ExpireAllStaleHolds(ctx context.Context, now time.Time) (int64, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const (
	queryExpireTripHolds = `
		UPDATE seats
		SET status = 'available', hold_until = NULL, hold_token = NULL, updated_at = $2
		WHERE trip_id = $1 AND status = 'held' AND hold_until <= $2
	`

	queryExpireAllHolds = `
		UPDATE seats
		SET status = 'available', hold_until = NULL, hold_token = NULL, updated_at = $1
		WHERE status = 'held' AND hold_until <= $1
	`

	queryHoldSeats = `
		UPDATE seats
		SET status = 'held', hold_until = $3, hold_token = $4, updated_at = $5
		WHERE trip_id = $1 AND number = ANY($2) AND status = 'available'
		RETURNING number
	`

	queryReleaseSeats = `
		UPDATE seats
		SET status = 'available', hold_until = NULL, hold_token = NULL, updated_at = $3
		WHERE trip_id = $1 AND number = ANY($2) AND status = 'held'
		  AND ($4::uuid IS NULL OR hold_token = $4)
		RETURNING number
	`
)

func (r *seatRepository) FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, trip_id, number, row_num, column_num, status, hold_until, hold_token, updated_at
		FROM seats
		WHERE trip_id = $1
		ORDER BY row_num, column_num
	`

	rows, err := r.db.Query(ctx, query, tripID)
	if err != nil {
		r.log.Error("Failed to find seats by trip ID",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
		)
		return nil, fmt.Errorf("find seats by trip ID %s: %w", tripID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.TripID,
			&seat.Number,
			&seat.Row,
			&seat.Column,
			&seat.Status,
			&seat.HoldUntil,
			&seat.HoldToken,
			&seat.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}

// Hold moves every listed seat from available to held, or none of them.
// Stale holds on the trip are reclaimed first inside the same transaction.
// A *SeatConflictError lists the seats that were not available.
func (r *seatRepository) Hold(ctx context.Context, tripID uuid.UUID, numbers []string, token uuid.UUID, now, until time.Time) error {
	err := inTx(ctx, r.db, r.log, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, queryExpireTripHolds, tripID, now); err != nil {
			return fmt.Errorf("expire stale holds for trip %s: %w", tripID.String(), err)
		}

		rows, err := tx.Query(ctx, queryHoldSeats, tripID, numbers, until, token, now)
		if err != nil {
			return fmt.Errorf("hold seats for trip %s: %w", tripID.String(), err)
		}
		held, err := collectStrings(rows)
		if err != nil {
			return fmt.Errorf("hold seats for trip %s: %w", tripID.String(), err)
		}

		if conflict := missing(numbers, held); len(conflict) > 0 {
			return &SeatConflictError{Seats: conflict}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*SeatConflictError); !ok {
			r.log.Error("Failed to hold seats",
				zap.Error(err),
				zap.String("trip_id", tripID.String()),
				zap.Strings("seats", numbers),
			)
		}
		return err
	}

	return nil
}

// Release returns held seats to available. With a token only holds placed
// under that token are released. Seats not currently held are skipped.
func (r *seatRepository) Release(ctx context.Context, tripID uuid.UUID, numbers []string, token *uuid.UUID, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, queryReleaseSeats, tripID, numbers, now, token)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
			zap.Strings("seats", numbers),
		)
		return nil, fmt.Errorf("release seats for trip %s: %w", tripID.String(), err)
	}

	released, err := collectStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("release seats for trip %s: %w", tripID.String(), err)
	}

	return released, nil
}

func (r *seatRepository) ExpireStaleHolds(ctx context.Context, tripID uuid.UUID, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, queryExpireTripHolds, tripID, now)
	if err != nil {
		r.log.Error("Failed to expire stale holds",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
		)
		return 0, fmt.Errorf("expire stale holds for trip %s: %w", tripID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *seatRepository) ExpireAllStaleHolds(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, queryExpireAllHolds, now)
	if err != nil {
		r.log.Error("Failed to expire stale holds", zap.Error(err))
		return 0, fmt.Errorf("expire stale holds: %w", err)
	}

	return result.RowsAffected(), nil
}
