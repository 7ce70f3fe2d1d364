package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// ProcessPayment handles POST /api/payments
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.ProcessPayment(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "process payment")
		return
	}

	// a declined charge is still a processed request
	if result.Payment.Status != entity.PaymentStatusSuccess {
		utils.ResponseSuccess(w, "Payment failed", result)
		return
	}

	utils.ResponseSuccess(w, "Payment successful", result)
}

// Webhook handles POST /api/payments/webhook
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.HandleWebhook(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "payment webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook processed", result)
}
