package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	Code           string               `json:"code"`
	TripID         string               `json:"trip_id"`
	PassengerName  string               `json:"passenger_name"`
	PassengerPhone string               `json:"passenger_phone"`
	Seats          []string             `json:"seats"`
	TotalAmount    int64                `json:"total_amount"`
	Status         entity.BookingStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Trip    TripResponse     `json:"trip"`
	Payment *PaymentResponse `json:"payment,omitempty"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Amount        int64                `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	Provider      string               `json:"provider"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// PaymentResultResponse is returned by a payment attempt, whatever its outcome.
type PaymentResultResponse struct {
	Payment PaymentResponse `json:"payment"`
	Booking BookingResponse `json:"booking"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:             booking.ID.String(),
		Code:           booking.Code,
		TripID:         booking.TripID.String(),
		PassengerName:  booking.PassengerName,
		PassengerPhone: booking.PassengerPhone,
		Seats:          booking.Seats,
		TotalAmount:    booking.TotalAmount,
		Status:         booking.Status,
		CreatedAt:      booking.CreatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		Amount:        payment.Amount,
		Status:        payment.Status,
		Provider:      payment.Provider,
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
	}
}
