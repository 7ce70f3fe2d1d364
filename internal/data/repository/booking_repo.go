package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindByTripID(ctx context.Context, tripID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByTripID(ctx context.Context, tripID uuid.UUID) (int64, error)

	// Business queries
	CreateOccupying(ctx context.Context, booking *entity.Booking, opts OccupyOptions) error
	Cancel(ctx context.Context, bookingID uuid.UUID, now time.Time) error
}

// OccupyOptions controls how CreateOccupying claims seats and picks a code.
type OccupyOptions struct {
	// HoldToken, when set, restricts occupation to live holds placed under it.
	// Without it both held and available seats are occupiable.
	HoldToken *uuid.UUID
	Now       time.Time

	NextCode        func() string
	MaxCodeAttempts int
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const (
	bookingColumns = `id, code, trip_id, passenger_name, passenger_phone, seats, total_amount, status, created_at, updated_at`

	queryOccupySeats = `
		UPDATE seats
		SET status = 'occupied', hold_until = NULL, hold_token = NULL, updated_at = $3
		WHERE trip_id = $1 AND number = ANY($2) AND status IN ('available', 'held')
		RETURNING number
	`

	queryOccupyHeldSeats = `
		UPDATE seats
		SET status = 'occupied', hold_until = NULL, hold_token = NULL, updated_at = $3
		WHERE trip_id = $1 AND number = ANY($2)
		  AND status = 'held' AND hold_token = $4 AND hold_until > $3
		RETURNING number
	`

	queryInsertBooking = `
		INSERT INTO bookings (id, code, trip_id, passenger_name, passenger_phone, seats, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code) DO NOTHING
		RETURNING id
	`

	// A booking cancelled by a failed payment still owns its occupied seats
	// until seats_released is set, so it may be cancelled once more to free them.
	queryCancelBooking = `
		UPDATE bookings
		SET status = 'cancelled', seats_released = TRUE, updated_at = $2
		WHERE id = $1
		  AND (status IN ('pending', 'confirmed') OR (status = 'cancelled' AND NOT seats_released))
		RETURNING trip_id, seats
	`

	queryFreeOccupiedSeats = `
		UPDATE seats
		SET status = 'available', updated_at = $3
		WHERE trip_id = $1 AND number = ANY($2) AND status = 'occupied'
	`
)

// CreateOccupying moves every seat of the booking to occupied and inserts the
// booking row in a single transaction. Code collisions are retried inside the
// transaction with a fresh code; any other failure rolls everything back.
func (r *bookingRepository) CreateOccupying(ctx context.Context, booking *entity.Booking, opts OccupyOptions) error {
	err := inTx(ctx, r.db, r.log, func(tx pgx.Tx) error {
		var (
			rows pgx.Rows
			err  error
		)
		if opts.HoldToken != nil {
			rows, err = tx.Query(ctx, queryOccupyHeldSeats, booking.TripID, booking.Seats, opts.Now, *opts.HoldToken)
		} else {
			rows, err = tx.Query(ctx, queryOccupySeats, booking.TripID, booking.Seats, opts.Now)
		}
		if err != nil {
			return fmt.Errorf("occupy seats: %w", err)
		}
		occupied, err := collectStrings(rows)
		if err != nil {
			return fmt.Errorf("occupy seats: %w", err)
		}
		if conflict := missing(booking.Seats, occupied); len(conflict) > 0 {
			return &SeatConflictError{Seats: conflict}
		}

		for attempt := 0; attempt < opts.MaxCodeAttempts; attempt++ {
			code := opts.NextCode()

			var id uuid.UUID
			err := tx.QueryRow(ctx, queryInsertBooking,
				booking.ID,
				code,
				booking.TripID,
				booking.PassengerName,
				booking.PassengerPhone,
				booking.Seats,
				booking.TotalAmount,
				booking.Status,
				booking.CreatedAt,
				booking.UpdatedAt,
			).Scan(&id)
			if errors.Is(err, pgx.ErrNoRows) {
				r.log.Debug("Booking code collision", zap.String("code", code), zap.Int("attempt", attempt+1))
				continue
			}
			if err != nil {
				return fmt.Errorf("insert booking: %w", err)
			}

			booking.Code = code
			return nil
		}

		return ErrCodeSpaceExhausted
	})
	if err != nil {
		var conflict *SeatConflictError
		if !errors.As(err, &conflict) {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("trip_id", booking.TripID.String()),
				zap.Strings("seats", booking.Seats),
			)
		}
		return err
	}

	return nil
}

// Cancel moves a booking to cancelled and frees its occupied seats in the
// same transaction. ErrStateChanged is returned when the booking is missing
// or its seats were already freed.
func (r *bookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID, now time.Time) error {
	err := inTx(ctx, r.db, r.log, func(tx pgx.Tx) error {
		var (
			tripID uuid.UUID
			seats  []string
		)
		err := tx.QueryRow(ctx, queryCancelBooking, bookingID, now).Scan(&tripID, &seats)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStateChanged
		}
		if err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		if _, err := tx.Exec(ctx, queryFreeOccupiedSeats, tripID, seats, now); err != nil {
			return fmt.Errorf("free seats: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrStateChanged) {
			r.log.Error("Failed to cancel booking",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
			)
		}
		return err
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find booking by code %s: %w", code, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByTripID(ctx context.Context, tripID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE trip_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, tripID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by trip ID",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by trip ID %s: %w", tripID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE trip_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, tripID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by trip ID",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
		)
		return 0, fmt.Errorf("count bookings by trip ID %s: %w", tripID.String(), err)
	}

	return count, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Code,
		&booking.TripID,
		&booking.PassengerName,
		&booking.PassengerPhone,
		&booking.Seats,
		&booking.TotalAmount,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
