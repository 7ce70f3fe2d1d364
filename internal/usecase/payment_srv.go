package usecase

import (
	"context"
	"errors"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/messaging"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentOutcome is what the gateway reported for one charge attempt.
type PaymentOutcome struct {
	Success       bool
	TransactionID string
	Amount        int64
	PhoneNumber   string
}

type PaymentService interface {
	ProcessPayment(ctx context.Context, req *request.ProcessPaymentRequest) (*response.PaymentResultResponse, error)
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, outcome PaymentOutcome) (*response.PaymentResultResponse, error)
	HandleWebhook(ctx context.Context, req *request.PaymentWebhookRequest) (*response.PaymentResultResponse, error)
}

type paymentService struct {
	repo      *repository.Repository
	catalog   *tripCatalog
	gateway   PaymentGateway
	publisher Publisher
	topic     string
	provider  string
	booking   utils.BookingConfig
	now       Clock
	log       *zap.Logger
}

func NewPaymentService(repo *repository.Repository, catalog *tripCatalog, gateway PaymentGateway, publisher Publisher, config *utils.Config, clock Clock, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:      repo,
		catalog:   catalog,
		gateway:   gateway,
		publisher: publisher,
		topic:     config.Kafka.BookingTopic,
		provider:  config.Payment.Provider,
		booking:   config.Booking,
		now:       clock,
		log:       log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, req *request.ProcessPaymentRequest) (*response.PaymentResultResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Process payment validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	bookingID, err := parseID("booking_id", req.BookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidState, booking.Code, booking.Status)
	}
	if req.Amount != booking.TotalAmount {
		return nil, ValidationError{Fields: map[string]string{
			"amount": fmt.Sprintf("Must equal booking total %d", booking.TotalAmount),
		}}
	}

	result, err := s.gateway.Charge(ctx, ChargeRequest{
		BookingID:   bookingID,
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.log.Error("Payment gateway call failed", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, fmt.Errorf("charge payment: %w", err)
	}

	return s.confirm(ctx, booking, PaymentOutcome{
		Success:       result.Success,
		TransactionID: result.TransactionID,
		Amount:        req.Amount,
		PhoneNumber:   req.PhoneNumber,
	})
}

func (s *paymentService) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, outcome PaymentOutcome) (*response.PaymentResultResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.confirm(ctx, booking, outcome)
}

// HandleWebhook applies an asynchronous gateway callback. A replay of the
// success that already confirmed the booking is acknowledged as is.
func (s *paymentService) HandleWebhook(ctx context.Context, req *request.PaymentWebhookRequest) (*response.PaymentResultResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment webhook validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	bookingID, err := parseID("booking_id", req.BookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Payment.FindByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if existing != nil && existing.BookingID != bookingID {
		return nil, ValidationError{Fields: map[string]string{
			"transaction_id": "Belongs to another booking",
		}}
	}

	success := req.Status == string(entity.PaymentStatusSuccess)
	if existing != nil && success && existing.Status == entity.PaymentStatusSuccess &&
		booking.Status == entity.BookingStatusConfirmed {
		s.log.Info("Duplicate payment webhook ignored", zap.String("transaction_id", req.TransactionID))
		return &response.PaymentResultResponse{
			Payment: response.PaymentToResponse(existing),
			Booking: response.BookingToResponse(booking),
		}, nil
	}

	outcome := PaymentOutcome{
		Success:       success,
		TransactionID: req.TransactionID,
		Amount:        booking.TotalAmount,
		PhoneNumber:   booking.PassengerPhone,
	}
	if existing != nil {
		outcome.Amount = existing.Amount
		outcome.PhoneNumber = existing.PhoneNumber
	}

	return s.confirm(ctx, booking, outcome)
}

// confirm records the payment outcome and the resulting booking status in
// one transaction. Seats keep whatever state they have.
func (s *paymentService) confirm(ctx context.Context, booking *entity.Booking, outcome PaymentOutcome) (*response.PaymentResultResponse, error) {
	now := s.now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:   booking.ID,
		Amount:      outcome.Amount,
		Status:      entity.PaymentStatusFailed,
		Provider:    s.provider,
		PhoneNumber: outcome.PhoneNumber,
	}
	if outcome.TransactionID != "" {
		txID := outcome.TransactionID
		payment.TransactionID = &txID
	}

	target := entity.BookingStatusPending
	switch {
	case outcome.Success:
		payment.Status = entity.PaymentStatusSuccess
		target = entity.BookingStatusConfirmed
	case s.booking.CancelOnPaymentFailure:
		target = entity.BookingStatusCancelled
	}

	if err := s.repo.Payment.RecordOutcome(ctx, payment, target); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, NotFoundError{Resource: "booking", ID: booking.ID.String()}
		case errors.Is(err, repository.ErrStateChanged):
			return nil, fmt.Errorf("%w: booking %s is no longer pending", ErrInvalidState, booking.Code)
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}

	booking.Status = target
	booking.UpdatedAt = now

	s.log.Info("Payment recorded",
		zap.String("booking_id", booking.ID.String()),
		zap.String("code", booking.Code),
		zap.String("payment_status", string(payment.Status)),
		zap.String("booking_status", string(booking.Status)),
	)

	if outcome.Success {
		s.publishConfirmed(ctx, booking, payment)
	}

	return &response.PaymentResultResponse{
		Payment: response.PaymentToResponse(payment),
		Booking: response.BookingToResponse(booking),
	}, nil
}

func (s *paymentService) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, NotFoundError{Resource: "booking", ID: id.String()}
	}
	return booking, nil
}

// publishConfirmed never fails the payment; the booking is already committed.
func (s *paymentService) publishConfirmed(ctx context.Context, booking *entity.Booking, payment *entity.Payment) {
	if s.publisher == nil || s.topic == "" {
		return
	}

	trip, err := s.catalog.find(ctx, booking.TripID)
	if err != nil {
		s.log.Warn("Skipping confirmation event, trip lookup failed", zap.Error(err))
		return
	}

	event := messaging.BookingConfirmedEvent{
		Type:           messaging.EventBookingConfirmed,
		BookingID:      booking.ID.String(),
		Code:           booking.Code,
		PassengerName:  booking.PassengerName,
		PassengerPhone: booking.PassengerPhone,
		Seats:          booking.Seats,
		TotalAmount:    booking.TotalAmount,
		FromCity:       trip.FromCity,
		ToCity:         trip.ToCity,
		OperatorName:   trip.OperatorName,
		DepartureTime:  trip.DepartureTime,
	}
	if payment.TransactionID != nil {
		event.TransactionID = *payment.TransactionID
	}

	if err := s.publisher.Publish(ctx, s.topic, booking.Code, event); err != nil {
		s.log.Error("Failed to publish booking confirmation",
			zap.Error(err),
			zap.String("code", booking.Code),
		)
	}
}
