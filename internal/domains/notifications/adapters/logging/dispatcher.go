package logging

import (
	"context"
	"log/slog"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
)

var _ ports.Dispatcher = (*Dispatcher)(nil)

// Dispatcher delivers notifications to the structured log. It stands in for a
// real channel (email, push) in environments without one configured.
type Dispatcher struct {
	logger *slog.Logger
}

// NewDispatcher builds a log-backed dispatcher. A nil logger falls back to the
// process default.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Dispatch writes the notification to the log.
func (d *Dispatcher) Dispatch(ctx context.Context, notification *domain.Notification) error {
	if notification == nil {
		return nil
	}
	d.logger.InfoContext(ctx, "notification dispatched",
		slog.Int64("notification_id", notification.ID),
		slog.Int64("user_id", notification.UserID),
		slog.String("type", string(notification.Type)),
		slog.String("message", notification.Message),
	)
	return nil
}
