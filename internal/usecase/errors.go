package usecase

import (
	"errors"
	"fmt"
	"strings"

	"bus-booking/pkg/utils"
)

var (
	// ErrBookingFailed wraps any createBooking failure. The transaction has
	// rolled back, so the caller may retry with fresh seat state.
	ErrBookingFailed = errors.New("booking failed")

	// ErrInvalidState is returned when a booking is not in a status that
	// allows the requested transition.
	ErrInvalidState = errors.New("invalid booking state")
)

// SeatUnavailableError names exactly which requested seats were not in the
// expected state, in request order.
type SeatUnavailableError struct {
	Seats []string
}

func (e SeatUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Seats, ", "))
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

type ValidationError struct {
	Fields map[string]string
	Msg    string
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Fields) > 0 {
		return "validation failed: " + utils.FormatValidationErrors(e.Fields)
	}
	return "validation error"
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// UnavailableSeats extracts the conflicting seats from err, if any.
func UnavailableSeats(err error) ([]string, bool) {
	var target SeatUnavailableError
	if errors.As(err, &target) {
		return target.Seats, true
	}
	return nil, false
}
