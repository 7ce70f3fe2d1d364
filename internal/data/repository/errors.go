package repository

import (
	"errors"
	"fmt"
	"strings"
)

// SeatConflictError reports the requested seats whose compare-and-set did not
// apply. The surrounding transaction has already been rolled back.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats not in expected state: %s", strings.Join(e.Seats, ", "))
}

var (
	// ErrCodeSpaceExhausted means every generated booking code collided.
	ErrCodeSpaceExhausted = errors.New("booking code attempts exhausted")

	// ErrStateChanged means a conditional update matched no row because the
	// row was not in the expected status.
	ErrStateChanged = errors.New("row not in expected state")

	ErrNotFound = errors.New("record not found")
)
