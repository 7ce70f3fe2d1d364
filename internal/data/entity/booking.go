package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	Code           string        `db:"code"` // YY-2026-042
	TripID         uuid.UUID     `db:"trip_id"`
	PassengerName  string        `db:"passenger_name"`
	PassengerPhone string        `db:"passenger_phone"`
	Seats          []string      `db:"seats"`
	TotalAmount    int64         `db:"total_amount"`
	Status         BookingStatus `db:"status"`
}
