package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByCode(ctx context.Context, code string) (*response.BookingDetailResponse, error)

	// Admin endpoints
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListTripBookings(ctx context.Context, tripID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo    *repository.Repository
	catalog *tripCatalog
	config  utils.BookingConfig
	now     Clock
	newCode func(time.Time) string
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, catalog *tripCatalog, config utils.BookingConfig, clock Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		catalog: catalog,
		config:  config,
		now:     clock,
		newCode: utils.GenerateBookingCode,
		log:     log.With(zap.String("service", "booking")),
	}
}

// CreateBooking occupies the requested seats and inserts the booking as one
// unit. With a hold token only seats still held under that token qualify;
// without one, held and available seats are both accepted.
func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	tripID, err := parseID("trip_id", req.TripID)
	if err != nil {
		return nil, err
	}
	token, err := parseHoldToken(req.HoldToken)
	if err != nil {
		return nil, err
	}
	if token == nil && s.config.RequireHoldToken {
		return nil, ValidationError{Fields: map[string]string{"hold_token": "This field is required"}}
	}

	trip, err := s.catalog.find(ctx, tripID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TripID:         tripID,
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		Seats:          req.SeatNumbers,
		TotalAmount:    trip.Price * int64(len(req.SeatNumbers)),
		Status:         entity.BookingStatusPending,
	}

	err = s.repo.Booking.CreateOccupying(ctx, booking, repository.OccupyOptions{
		HoldToken:       token,
		Now:             now,
		NextCode:        func() string { return s.newCode(now) },
		MaxCodeAttempts: s.config.CodeMaxAttempts,
	})
	if err != nil {
		var conflict *repository.SeatConflictError
		if errors.As(err, &conflict) {
			s.log.Info("Booking rejected, seats not claimable",
				zap.String("trip_id", req.TripID),
				zap.Strings("unavailable", conflict.Seats),
				zap.Bool("with_token", token != nil),
			)
			return nil, fmt.Errorf("%w: %w", ErrBookingFailed, SeatUnavailableError{Seats: conflict.Seats})
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("trip_id", req.TripID),
			zap.Strings("seats", req.SeatNumbers),
		)
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("code", booking.Code),
		zap.String("trip_id", req.TripID),
		zap.Int("seat_count", len(booking.Seats)),
		zap.Int64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByCode(ctx context.Context, code string) (*response.BookingDetailResponse, error) {
	booking, err := s.repo.Booking.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, NotFoundError{Resource: "booking", ID: code}
	}

	trip, err := s.catalog.find(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
		Trip:            response.TripToResponse(trip),
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment != nil {
		p := response.PaymentToResponse(payment)
		detail.Payment = &p
	}

	return detail, nil
}

// CancelBooking cancels a booking and frees its seats. A booking already
// cancelled by a failed payment is accepted once more to free its seats.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID("booking_id", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, NotFoundError{Resource: "booking", ID: bookingID}
	}

	now := s.now()
	if err := s.repo.Booking.Cancel(ctx, id, now); err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidState, booking.Code, booking.Status)
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = now

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("code", booking.Code),
		zap.Strings("seats", booking.Seats),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListTripBookings(ctx context.Context, tripID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.find(ctx, id); err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByTripID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list trip bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByTripID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count trip bookings: %w", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		data = append(data, response.BookingToResponse(booking))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}
