package adaptor

import (
	"context"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockTripService struct{ mock.Mock }

func (m *mockTripService) GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error) {
	args := m.Called(ctx, tripID)
	trip, _ := args.Get(0).(*response.TripResponse)
	return trip, args.Error(1)
}

func (m *mockTripService) CreateTrip(ctx context.Context, req *request.CreateTripRequest) (*response.TripResponse, error) {
	args := m.Called(ctx, req)
	trip, _ := args.Get(0).(*response.TripResponse)
	return trip, args.Error(1)
}

type mockInventoryService struct{ mock.Mock }

func (m *mockInventoryService) HoldSeats(ctx context.Context, tripID string, req *request.HoldSeatsRequest) (*response.HoldResponse, error) {
	args := m.Called(ctx, tripID, req)
	hold, _ := args.Get(0).(*response.HoldResponse)
	return hold, args.Error(1)
}

func (m *mockInventoryService) ReleaseSeats(ctx context.Context, tripID string, req *request.ReleaseSeatsRequest) (*response.ReleaseResponse, error) {
	args := m.Called(ctx, tripID, req)
	released, _ := args.Get(0).(*response.ReleaseResponse)
	return released, args.Error(1)
}

func (m *mockInventoryService) ListSeats(ctx context.Context, tripID string) (*response.SeatMapResponse, error) {
	args := m.Called(ctx, tripID)
	seats, _ := args.Get(0).(*response.SeatMapResponse)
	return seats, args.Error(1)
}

func (m *mockInventoryService) ExpireStaleHolds(ctx context.Context, tripID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInventoryService) ExpireAllStaleHolds(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, req)
	booking, _ := args.Get(0).(*response.BookingResponse)
	return booking, args.Error(1)
}

func (m *mockBookingService) GetBookingByCode(ctx context.Context, code string) (*response.BookingDetailResponse, error) {
	args := m.Called(ctx, code)
	booking, _ := args.Get(0).(*response.BookingDetailResponse)
	return booking, args.Error(1)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID)
	booking, _ := args.Get(0).(*response.BookingResponse)
	return booking, args.Error(1)
}

func (m *mockBookingService) ListTripBookings(ctx context.Context, tripID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, tripID, req)
	page, _ := args.Get(0).(*response.PaginatedResponse[response.BookingResponse])
	return page, args.Error(1)
}

type mockPaymentService struct{ mock.Mock }

func (m *mockPaymentService) ProcessPayment(ctx context.Context, req *request.ProcessPaymentRequest) (*response.PaymentResultResponse, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*response.PaymentResultResponse)
	return result, args.Error(1)
}

func (m *mockPaymentService) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, outcome usecase.PaymentOutcome) (*response.PaymentResultResponse, error) {
	args := m.Called(ctx, bookingID, outcome)
	result, _ := args.Get(0).(*response.PaymentResultResponse)
	return result, args.Error(1)
}

func (m *mockPaymentService) HandleWebhook(ctx context.Context, req *request.PaymentWebhookRequest) (*response.PaymentResultResponse, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*response.PaymentResultResponse)
	return result, args.Error(1)
}

type mockRouteService struct{ mock.Mock }

func (m *mockRouteService) ListRoutes(ctx context.Context) ([]response.RouteResponse, error) {
	args := m.Called(ctx)
	routes, _ := args.Get(0).([]response.RouteResponse)
	return routes, args.Error(1)
}

func (m *mockRouteService) ListStops(ctx context.Context, routeID string) ([]response.StopResponse, error) {
	args := m.Called(ctx, routeID)
	stops, _ := args.Get(0).([]response.StopResponse)
	return stops, args.Error(1)
}

func (m *mockRouteService) ListCompanies(ctx context.Context) ([]response.CompanyResponse, error) {
	args := m.Called(ctx)
	companies, _ := args.Get(0).([]response.CompanyResponse)
	return companies, args.Error(1)
}
