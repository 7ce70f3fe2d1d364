package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bus-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPayment(status entity.PaymentStatus, now time.Time) *entity.Payment {
	txID := "OM-1767254400000-abc123xyz"
	return &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:     uuid.New(),
		Amount:        30000,
		Status:        status,
		Provider:      "orange_money",
		PhoneNumber:   "+22370000000",
		TransactionID: &txID,
	}
}

func expectUpsertPayment(mock pgxmock.PgxPoolIface, p *entity.Payment) *pgxmock.ExpectedQuery {
	return mock.ExpectQuery(regexp.QuoteMeta(queryUpsertPayment)).
		WithArgs(p.ID, p.BookingID, p.Amount, p.Status, p.Provider, p.PhoneNumber,
			p.TransactionID, p.CreatedAt, p.UpdatedAt)
}

func TestPaymentRepository_RecordOutcome_ConfirmsPendingBooking(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRepository(mock, zap.NewNop())

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	payment := newTestPayment(entity.PaymentStatusSuccess, now)
	newID := payment.ID

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryLockBooking)).
		WithArgs(payment.BookingID).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(entity.BookingStatusPending))
	expectUpsertPayment(mock, payment).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(newID, now))
	mock.ExpectExec(regexp.QuoteMeta(queryTransitionBooking)).
		WithArgs(payment.BookingID, entity.BookingStatusConfirmed, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.RecordOutcome(context.Background(), payment, entity.BookingStatusConfirmed)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_RecordOutcome_FailureKeepsBookingPending(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRepository(mock, zap.NewNop())

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	payment := newTestPayment(entity.PaymentStatusFailed, now)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryLockBooking)).
		WithArgs(payment.BookingID).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(entity.BookingStatusPending))
	expectUpsertPayment(mock, payment).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(payment.ID, now))
	mock.ExpectCommit()

	err := repo.RecordOutcome(context.Background(), payment, entity.BookingStatusPending)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_RecordOutcome_RejectsNonPending(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRepository(mock, zap.NewNop())

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	payment := newTestPayment(entity.PaymentStatusSuccess, now)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryLockBooking)).
		WithArgs(payment.BookingID).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(entity.BookingStatusCancelled))
	mock.ExpectRollback()

	err := repo.RecordOutcome(context.Background(), payment, entity.BookingStatusConfirmed)

	require.ErrorIs(t, err, ErrStateChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_RecordOutcome_MissingBooking(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRepository(mock, zap.NewNop())

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	payment := newTestPayment(entity.PaymentStatusSuccess, now)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryLockBooking)).
		WithArgs(payment.BookingID).
		WillReturnRows(pgxmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	err := repo.RecordOutcome(context.Background(), payment, entity.BookingStatusConfirmed)

	require.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
