package request

type ProcessPaymentRequest struct {
	BookingID   string `json:"booking_id" validate:"required,uuid"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	PhoneNumber string `json:"phone_number" validate:"required,numeric,min=8,max=20"`
}

// PaymentWebhookRequest is the callback body sent by the payment provider.
type PaymentWebhookRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,max=100"`
	Status        string `json:"status" validate:"required,oneof=success failed"`
	BookingID     string `json:"booking_id" validate:"required,uuid"`
}
