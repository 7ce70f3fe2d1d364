package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TripRepository interface {
	CreateWithSeats(ctx context.Context, trip *entity.Trip, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error)
}

type tripRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTripRepository(db database.PgxIface, log *zap.Logger) TripRepository {
	return &tripRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip")),
	}
}

// CreateWithSeats inserts the trip and its whole seat grid in one transaction.
func (r *tripRepository) CreateWithSeats(ctx context.Context, trip *entity.Trip, seats []*entity.Seat) error {
	tripQuery := `
		INSERT INTO trips (id, from_city, to_city, operator_name, departure_time, arrival_time, price, bus_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	seatQuery := `
		INSERT INTO seats (id, trip_id, number, row_num, column_num, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	err := inTx(ctx, r.db, r.log, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, tripQuery,
			trip.ID,
			trip.FromCity,
			trip.ToCity,
			trip.OperatorName,
			trip.DepartureTime,
			trip.ArrivalTime,
			trip.Price,
			trip.BusType,
			trip.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert trip: %w", err)
		}

		for _, seat := range seats {
			_, err := tx.Exec(ctx, seatQuery,
				seat.ID,
				seat.TripID,
				seat.Number,
				seat.Row,
				seat.Column,
				seat.Status,
				seat.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert seat %s: %w", seat.Number, err)
			}
		}

		return nil
	})
	if err != nil {
		r.log.Error("Failed to create trip",
			zap.Error(err),
			zap.String("trip_id", trip.ID.String()),
			zap.Int("seats", len(seats)),
		)
		return fmt.Errorf("create trip %s: %w", trip.ID.String(), err)
	}

	return nil
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	query := `
		SELECT id, from_city, to_city, operator_name, departure_time, arrival_time, price, bus_type, created_at
		FROM trips
		WHERE id = $1
	`

	var trip entity.Trip
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.FromCity,
		&trip.ToCity,
		&trip.OperatorName,
		&trip.DepartureTime,
		&trip.ArrivalTime,
		&trip.Price,
		&trip.BusType,
		&trip.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip by ID",
			zap.Error(err),
			zap.String("trip_id", id.String()),
		)
		return nil, fmt.Errorf("find trip by ID %s: %w", id.String(), err)
	}

	return &trip, nil
}
