package memory

import (
	"context"
	"sync"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
)

var _ ports.Dispatcher = (*Dispatcher)(nil)

// Dispatcher records dispatched notifications so tests can assert delivery.
type Dispatcher struct {
	mu         sync.Mutex
	dispatched []*domain.Notification
}

// NewDispatcher constructs an empty recording dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Dispatch records the notification.
func (d *Dispatcher) Dispatch(_ context.Context, notification *domain.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched = append(d.dispatched, cloneNotification(notification))
	return nil
}

// Dispatched returns a copy of everything delivered so far.
func (d *Dispatcher) Dispatched() []*domain.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*domain.Notification, len(d.dispatched))
	copy(out, d.dispatched)
	return out
}
