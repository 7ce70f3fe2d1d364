package adaptor

import (
	"errors"
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Trip    *TripHandler
	Route   *RouteHandler
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Trip:    NewTripHandler(service.Trip, service.Inventory, service.Booking, log),
		Route:   NewRouteHandler(service.Route, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}

// handleServiceError maps use case errors onto HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validation usecase.ValidationError

	switch {
	case errors.As(err, &validation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		if len(validation.Fields) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", validation.Fields)
			return
		}
		utils.ResponseBadRequest(w, err.Error(), nil)

	case usecase.IsNotFound(err):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrBookingFailed):
		log.Warn(operation+" failed - booking rolled back",
			zap.Error(err),
			zap.String("operation", operation))
		if seats, ok := usecase.UnavailableSeats(err); ok {
			utils.ResponseConflict(w, "Booking failed", map[string]any{"unavailable": seats})
			return
		}
		utils.ResponseConflict(w, "Booking failed, please retry", nil)

	case isSeatConflict(err):
		seats, _ := usecase.UnavailableSeats(err)
		log.Warn(operation+" failed - seats unavailable",
			zap.Strings("seats", seats),
			zap.String("operation", operation))
		utils.ResponseConflict(w, "Seats unavailable", map[string]any{"unavailable": seats})

	case errors.Is(err, usecase.ErrInvalidState):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func isSeatConflict(err error) bool {
	_, ok := usecase.UnavailableSeats(err)
	return ok
}
