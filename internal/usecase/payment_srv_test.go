package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPendingBooking(t *testing.T, f *fixture, seats ...string) *response.BookingResponse {
	t.Helper()
	resp, err := f.svc.Booking.CreateBooking(context.Background(), bookingRequest(f.tripID(), seats...))
	require.NoError(t, err)
	return resp
}

func paymentRequest(b *response.BookingResponse) *request.ProcessPaymentRequest {
	return &request.ProcessPaymentRequest{
		BookingID:   b.ID,
		Amount:      b.TotalAmount,
		PhoneNumber: "70112233",
	}
}

func TestPaymentService_ProcessPayment_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := createPendingBooking(t, f, "A1", "A2")

	result, err := f.svc.Payment.ProcessPayment(ctx, paymentRequest(booking))

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, result.Payment.Status)
	require.NotNil(t, result.Payment.TransactionID)
	assert.Equal(t, "OM-1772352000000-k3x9q2m7a", *result.Payment.TransactionID)
	assert.Equal(t, entity.BookingStatusConfirmed, result.Booking.Status)

	detail, err := f.svc.Booking.GetBookingByCode(ctx, booking.Code)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, detail.Status)
	require.NotNil(t, detail.Payment)
	assert.Equal(t, "orange_money", detail.Payment.Provider)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, booking.Code, event.Code)
	assert.Equal(t, "Kayes", event.ToCity)
	assert.Equal(t, []string{"A1", "A2"}, event.Seats)
}

func TestPaymentService_ProcessPayment_FailureLeavesSeatsOccupied(t *testing.T) {
	ctx := context.Background()

	t.Run("booking stays pending", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.result = ChargeResult{Success: false}
		booking := createPendingBooking(t, f, "A3")

		result, err := f.svc.Payment.ProcessPayment(ctx, paymentRequest(booking))

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusFailed, result.Payment.Status)
		assert.Nil(t, result.Payment.TransactionID)
		assert.Equal(t, entity.BookingStatusPending, result.Booking.Status)
		assert.Equal(t, entity.SeatStatusOccupied, f.status("A3"))
		assert.Empty(t, f.publisher.events)

		f.gateway.result = ChargeResult{Success: true, TransactionID: "OM-1-retry0001"}
		retry, err := f.svc.Payment.ProcessPayment(ctx, paymentRequest(booking))
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusConfirmed, retry.Booking.Status)
		assert.Equal(t, result.Payment.ID, retry.Payment.ID)
	})

	t.Run("booking cancelled when configured", func(t *testing.T) {
		f := newFixture(t, func(c *utils.Config) { c.Booking.CancelOnPaymentFailure = true })
		f.gateway.result = ChargeResult{Success: false}
		booking := createPendingBooking(t, f, "A4")

		result, err := f.svc.Payment.ProcessPayment(ctx, paymentRequest(booking))

		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, result.Booking.Status)
		assert.Equal(t, entity.SeatStatusOccupied, f.status("A4"))
	})
}

func TestPaymentService_ProcessPayment_Rejects(t *testing.T) {
	ctx := context.Background()

	t.Run("amount mismatch", func(t *testing.T) {
		f := newFixture(t)
		booking := createPendingBooking(t, f, "A1")
		req := paymentRequest(booking)
		req.Amount = 1000

		_, err := f.svc.Payment.ProcessPayment(ctx, req)

		assert.True(t, IsValidation(err))
		assert.Zero(t, f.gateway.calls)
	})

	t.Run("already confirmed", func(t *testing.T) {
		f := newFixture(t)
		booking := createPendingBooking(t, f, "A1")
		_, err := f.svc.Payment.ProcessPayment(ctx, paymentRequest(booking))
		require.NoError(t, err)

		_, err = f.svc.Payment.ProcessPayment(ctx, paymentRequest(booking))

		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, 1, f.gateway.calls)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Payment.ProcessPayment(ctx, &request.ProcessPaymentRequest{
			BookingID:   uuid.NewString(),
			Amount:      15000,
			PhoneNumber: "70112233",
		})

		assert.True(t, IsNotFound(err))
	})

	t.Run("gateway error", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.err = errors.New("provider timeout")
		booking := createPendingBooking(t, f, "A2")

		_, err := f.svc.Payment.ProcessPayment(ctx, paymentRequest(booking))

		require.Error(t, err)
		assert.False(t, IsValidation(err))
		detail, err := f.svc.Booking.GetBookingByCode(ctx, booking.Code)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPending, detail.Status)
		assert.Nil(t, detail.Payment)
	})
}

func TestPaymentService_ProcessPayment_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	booking := createPendingBooking(t, f, "A1")

	result, err := f.svc.Payment.ProcessPayment(context.Background(), paymentRequest(booking))

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, result.Booking.Status)
}

func TestPaymentService_ConfirmPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := createPendingBooking(t, f, "A1")
	id := uuid.MustParse(booking.ID)

	result, err := f.svc.Payment.ConfirmPayment(ctx, id, PaymentOutcome{
		Success:       true,
		TransactionID: "OM-42-abcdefghi",
		Amount:        booking.TotalAmount,
		PhoneNumber:   "70112233",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, result.Booking.Status)

	_, err = f.svc.Payment.ConfirmPayment(ctx, id, PaymentOutcome{Success: false})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := createPendingBooking(t, f, "A1")

	webhook := &request.PaymentWebhookRequest{
		TransactionID: "OM-1772352000000-zzzzzzzzz",
		Status:        "success",
		BookingID:     booking.ID,
	}

	result, err := f.svc.Payment.HandleWebhook(ctx, webhook)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, result.Booking.Status)
	assert.Equal(t, booking.TotalAmount, result.Payment.Amount)

	replay, err := f.svc.Payment.HandleWebhook(ctx, webhook)
	require.NoError(t, err)
	assert.Equal(t, result.Payment.ID, replay.Payment.ID)
	assert.Len(t, f.publisher.events, 1)

	other := createPendingBooking(t, f, "A2")
	_, err = f.svc.Payment.HandleWebhook(ctx, &request.PaymentWebhookRequest{
		TransactionID: webhook.TransactionID,
		Status:        "success",
		BookingID:     other.ID,
	})
	assert.True(t, IsValidation(err))
}

func TestSimulatedGateway_Charge(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	gw := NewSimulatedGateway(0.9, clock.Now).(*simulatedGateway)

	gw.roll = func() float64 { return 0.42 }
	ok, err := gw.Charge(context.Background(), ChargeRequest{Amount: 15000})
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.Regexp(t, `^OM-\d+-[0-9a-z]{9}$`, ok.TransactionID)

	gw.roll = func() float64 { return 0.95 }
	failed, err := gw.Charge(context.Background(), ChargeRequest{Amount: 15000})
	require.NoError(t, err)
	assert.False(t, failed.Success)
	assert.Empty(t, failed.TransactionID)
}
