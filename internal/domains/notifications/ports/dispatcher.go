package ports

import (
	"context"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
)

// Dispatcher pushes a stored notification to an external delivery channel
// (email, push, webhook). Delivery failures are logged, never fatal.
type Dispatcher interface {
	Dispatch(ctx context.Context, notification *domain.Notification) error
}

// Publisher is the inbound port other contexts use to raise platform events
// without depending on the notifications service type.
type Publisher interface {
	Publish(ctx context.Context, userID int64, kind domain.Type, data map[string]any) error
}

// NoopDispatcher drops every notification. Used when no channel is configured.
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(ctx context.Context, notification *domain.Notification) error {
	return nil
}
