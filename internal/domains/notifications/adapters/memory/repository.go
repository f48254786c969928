package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu            sync.RWMutex
	notifications map[int64]*storedNotification
	nextID        int64
	now           func() time.Time
}

type storedNotification struct {
	notification *domain.Notification
	metadata     projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		notifications: map[int64]*storedNotification{},
		nextID:        1,
		now:           time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a notification, assigning an identifier to new ones.
func (r *Repository) Save(_ context.Context, notification *domain.Notification) (*projection.Projection[*domain.Notification], error) {
	if notification == nil {
		return nil, errors.New("cannot save nil notification")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == 0 {
		notification.ID = r.nextID
		r.nextID++
	}

	entry, ok := r.notifications[notification.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = metadata.CreatedAt
	}

	stored := &storedNotification{notification: cloneNotification(notification), metadata: metadata}
	r.notifications[notification.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a notification if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Notification], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.notifications[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// FindByUser returns every notification addressed to one user.
func (r *Repository) FindByUser(_ context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Notification]
	for _, entry := range r.notifications {
		if entry.notification.UserID == userID {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// FindUnreadByUser returns the user's notifications still awaiting a read.
func (r *Repository) FindUnreadByUser(_ context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Notification]
	for _, entry := range r.notifications {
		if entry.notification.UserID == userID && !entry.notification.IsRead {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// List returns all notifications.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Notification], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Notification], 0, len(r.notifications))
	for _, entry := range r.notifications {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

// Delete removes a notification.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.notifications, id)
	return nil
}

func projectionCopy(entry *storedNotification) *projection.Projection[*domain.Notification] {
	return &projection.Projection[*domain.Notification]{
		Entity:   cloneNotification(entry.notification),
		Metadata: entry.metadata,
	}
}

func cloneNotification(n *domain.Notification) *domain.Notification {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Data != nil {
		clone.Data = make(map[string]any, len(n.Data))
		for k, v := range n.Data {
			clone.Data[k] = v
		}
	}
	return &clone
}
