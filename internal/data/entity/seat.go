package entity

import (
	"time"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusHeld      SeatStatus = "held"
	SeatStatusOccupied  SeatStatus = "occupied"
)

// Seat belongs to exactly one trip. HoldUntil and HoldToken are set
// if and only if Status is held.
type Seat struct {
	ID        uuid.UUID  `db:"id"`
	TripID    uuid.UUID  `db:"trip_id"`
	Number    string     `db:"number"`     // A1, B3, ...
	Row       int        `db:"row_num"`    // 1..10
	Column    int        `db:"column_num"` // 1..4
	Status    SeatStatus `db:"status"`
	HoldUntil *time.Time `db:"hold_until"`
	HoldToken *uuid.UUID `db:"hold_token"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// HoldExpired reports whether a held seat should already be back to available.
func (s *Seat) HoldExpired(now time.Time) bool {
	return s.Status == SeatStatusHeld && s.HoldUntil != nil && !now.Before(*s.HoldUntil)
}
