package cmd

import (
	"context"
	"time"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/messaging"

	"go.uber.org/zap"
)

// HoldReaper frees expired holds on every trip at each tick. Lazy expiry
// already keeps reads correct; the reaper only keeps the table tidy.
func HoldReaper(ctx context.Context, inventory usecase.InventoryService, interval time.Duration, logger *zap.Logger) {
	log := logger.With(zap.String("worker", "hold_reaper"))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Hold reaper started", zap.Duration("interval", interval))
	for {
		select {
		case <-ticker.C:
			expired, err := inventory.ExpireAllStaleHolds(ctx)
			if err != nil {
				log.Error("Failed to expire stale holds", zap.Error(err))
				continue
			}
			if expired > 0 {
				log.Info("Expired stale holds", zap.Int64("seats", expired))
			}
		case <-ctx.Done():
			log.Info("Hold reaper stopped")
			return
		}
	}
}

// BookingEventSource delivers booking.confirmed events to a handler until ctx
// is done or the source fails.
type BookingEventSource interface {
	ConsumeBookingConfirmed(ctx context.Context, handle func(context.Context, messaging.BookingConfirmedEvent) error) error
}

const (
	notifierRetryDelay    = time.Second
	notifierMaxRetryDelay = 30 * time.Second
)

// TicketNotifier sends the ticket SMS for every confirmed booking event. A
// failed source is restarted with exponential backoff.
func TicketNotifier(ctx context.Context, source BookingEventSource, notifier usecase.NotificationService, logger *zap.Logger) {
	runTicketNotifier(ctx, source, notifier, notifierRetryDelay, logger)
}

func runTicketNotifier(ctx context.Context, source BookingEventSource, notifier usecase.NotificationService, retryDelay time.Duration, logger *zap.Logger) {
	log := logger.With(zap.String("worker", "ticket_notifier"))

	log.Info("Ticket notifier started")
	delay := retryDelay
	for {
		err := source.ConsumeBookingConfirmed(ctx, notifier.HandleBookingConfirmed)
		if ctx.Err() != nil {
			log.Info("Ticket notifier stopped")
			return
		}
		if err == nil {
			delay = retryDelay
			continue
		}

		log.Error("Consumer stopped, restarting", zap.Error(err), zap.Duration("backoff", delay))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			log.Info("Ticket notifier stopped")
			return
		}
		delay = min(delay*2, notifierMaxRetryDelay)
	}
}
