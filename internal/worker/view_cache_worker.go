package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/events"
)

// ViewInvalidator drops cached ticket views.
type ViewInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// StartViewCacheWorker subscribes cache invalidation to every event that can
// change a ticket view. A nil invalidator registers nothing.
func StartViewCacheWorker(dispatcher events.Dispatcher, invalidator ViewInvalidator, logger *zap.Logger) {
	if dispatcher == nil || invalidator == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := func(ctx context.Context, event events.Event) error {
		if err := invalidator.InvalidateAll(ctx); err != nil {
			logger.Warn("view cache invalidation failed",
				zap.String("event_type", string(event.Type)),
				zap.Int64("ticket_id", event.TicketID),
				zap.Error(err),
			)
			return err
		}
		logger.Debug("view cache invalidated", zap.String("event_type", string(event.Type)))
		return nil
	}
	for _, eventType := range events.ViewEventTypes {
		dispatcher.Subscribe(eventType, handler)
	}
}
