package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Payment struct {
	Base
	BookingID     uuid.UUID     `db:"booking_id"`
	Amount        int64         `db:"amount"`
	Status        PaymentStatus `db:"status"`
	Provider      string        `db:"provider"`
	PhoneNumber   string        `db:"phone_number"`
	TransactionID *string       `db:"transaction_id"`
}
