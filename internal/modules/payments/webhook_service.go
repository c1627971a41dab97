package payments

import (
	"context"
	"log/slog"
)

// WebhookService dispatches verified provider events. Completed sessions are
// only logged for now; the order record keeps its pending_payment status.
type WebhookService struct {
	logger *slog.Logger
}

func NewWebhookService(logger *slog.Logger) *WebhookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookService{logger: logger}
}

func (s *WebhookService) Handle(ctx context.Context, ev WebhookEvent) {
	switch ev.Type {
	case "checkout.session.completed":
		s.logger.InfoContext(ctx, "payment successful",
			"session_id", ev.SessionID, "event_id", ev.ID)
	default:
		// Unknown events are acknowledged too; a 200 must never depend on
		// understanding the event.
		s.logger.InfoContext(ctx, "unhandled webhook event type",
			"type", ev.Type, "event_id", ev.ID)
	}
}
