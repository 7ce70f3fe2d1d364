package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	r.Post("/api/payments", paymentHandler.ProcessPayment)

	// POST /api/payments/webhook - provider callback
	r.Post("/api/payments/webhook", paymentHandler.Webhook)
}
