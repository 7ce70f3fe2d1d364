package repository

import (
	"context"
	"errors"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)

	// Business queries
	RecordOutcome(ctx context.Context, payment *entity.Payment, bookingStatus entity.BookingStatus) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const (
	paymentColumns = `id, booking_id, amount, status, provider, phone_number, transaction_id, created_at, updated_at`

	queryLockBooking = `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`

	queryUpsertPayment = `
		INSERT INTO payments (id, booking_id, amount, status, provider, phone_number, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (booking_id) DO UPDATE
		SET amount = EXCLUDED.amount,
		    status = EXCLUDED.status,
		    provider = EXCLUDED.provider,
		    phone_number = EXCLUDED.phone_number,
		    transaction_id = EXCLUDED.transaction_id,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	queryTransitionBooking = `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = 'pending'
	`
)

// RecordOutcome stores the single payment row of a pending booking and moves
// the booking to bookingStatus in the same transaction. Seats are untouched.
// ErrNotFound and ErrStateChanged report a missing or non-pending booking.
func (r *paymentRepository) RecordOutcome(ctx context.Context, payment *entity.Payment, bookingStatus entity.BookingStatus) error {
	err := inTx(ctx, r.db, r.log, func(tx pgx.Tx) error {
		var current entity.BookingStatus
		err := tx.QueryRow(ctx, queryLockBooking, payment.BookingID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock booking: %w", err)
		}
		if current != entity.BookingStatusPending {
			return ErrStateChanged
		}

		err = tx.QueryRow(ctx, queryUpsertPayment,
			payment.ID,
			payment.BookingID,
			payment.Amount,
			payment.Status,
			payment.Provider,
			payment.PhoneNumber,
			payment.TransactionID,
			payment.CreatedAt,
			payment.UpdatedAt,
		).Scan(&payment.ID, &payment.CreatedAt)
		if err != nil {
			return fmt.Errorf("upsert payment: %w", err)
		}

		if bookingStatus == entity.BookingStatusPending {
			return nil
		}

		result, err := tx.Exec(ctx, queryTransitionBooking, payment.BookingID, bookingStatus, payment.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrStateChanged
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrStateChanged) {
			r.log.Error("Failed to record payment outcome",
				zap.Error(err),
				zap.String("booking_id", payment.BookingID.String()),
				zap.String("status", string(payment.Status)),
			)
		}
		return err
	}

	return nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, transactionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by transaction ID",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find payment by transaction ID %s: %w", transactionID, err)
	}

	return payment, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.Provider,
		&payment.PhoneNumber,
		&payment.TransactionID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
