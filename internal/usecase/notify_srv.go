package usecase

import (
	"context"
	"fmt"
	"strings"

	"bus-booking/pkg/messaging"

	"go.uber.org/zap"
)

const phoneCountryPrefix = "+223"

type NotificationService interface {
	HandleBookingConfirmed(ctx context.Context, event messaging.BookingConfirmedEvent) error
}

type SMSSender interface {
	Send(ctx context.Context, phone, text string) error
}

// logSMSSender stands in for an SMS provider by writing the message to the log.
type logSMSSender struct {
	log *zap.Logger
}

func NewLogSMSSender(log *zap.Logger) SMSSender {
	return &logSMSSender{log: log.With(zap.String("component", "sms"))}
}

func (s *logSMSSender) Send(ctx context.Context, phone, text string) error {
	s.log.Info("SMS sent", zap.String("to", phone), zap.String("text", text))
	return nil
}

type notificationService struct {
	sender SMSSender
	log    *zap.Logger
}

func NewNotificationService(sender SMSSender, log *zap.Logger) NotificationService {
	return &notificationService{
		sender: sender,
		log:    log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) HandleBookingConfirmed(ctx context.Context, event messaging.BookingConfirmedEvent) error {
	phone := event.PassengerPhone
	if !strings.HasPrefix(phone, "+") {
		phone = phoneCountryPrefix + phone
	}

	if err := s.sender.Send(ctx, phone, RenderTicketSMS(event)); err != nil {
		s.log.Error("Failed to send ticket SMS", zap.Error(err), zap.String("code", event.Code))
		return fmt.Errorf("send ticket sms for %s: %w", event.Code, err)
	}
	return nil
}

// RenderTicketSMS builds the confirmation text shown at boarding.
func RenderTicketSMS(event messaging.BookingConfirmedEvent) string {
	departure := event.DepartureTime.UTC()

	var b strings.Builder
	fmt.Fprintf(&b, "%s ✅\n", event.OperatorName)
	b.WriteString("Réservation confirmée\n\n")
	fmt.Fprintf(&b, "Code : %s\n", event.Code)
	fmt.Fprintf(&b, "Trajet : %s → %s\n", event.FromCity, event.ToCity)
	fmt.Fprintf(&b, "Date : %s - %s\n", departure.Format("02/01/2006"), departure.Format("15:04"))
	fmt.Fprintf(&b, "Siège : %s\n", strings.Join(event.Seats, ", "))
	b.WriteString("Présentez ce code à l'embarquement.")
	return b.String()
}
