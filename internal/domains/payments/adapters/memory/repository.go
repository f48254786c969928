package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests. It enforces
// the one-payment-per-booking rule the relational schema guarantees.
type Repository struct {
	mu       sync.RWMutex
	payments map[int64]*storedPayment
	nextID   int64
	now      func() time.Time
}

type storedPayment struct {
	payment  *domain.Payment
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		payments: map[int64]*storedPayment{},
		nextID:   1,
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a payment, assigning an identifier to new ones.
func (r *Repository) Save(_ context.Context, payment *domain.Payment) (*projection.Projection[*domain.Payment], error) {
	if payment == nil {
		return nil, errors.New("cannot save nil payment")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.payments {
		if id != payment.ID && entry.payment.BookingID == payment.BookingID {
			return nil, ports.ErrDuplicateBooking
		}
	}

	if payment.ID == 0 {
		payment.ID = r.nextID
		r.nextID++
	}

	entry, ok := r.payments[payment.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = metadata.CreatedAt
	}

	stored := &storedPayment{payment: clonePayment(payment), metadata: metadata}
	r.payments[payment.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a payment if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Payment], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.payments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// GetByBooking fetches the payment attached to one booking.
func (r *Repository) GetByBooking(_ context.Context, bookingID int64) (*projection.Projection[*domain.Payment], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.payments {
		if entry.payment.BookingID == bookingID {
			return projectionCopy(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

// ListWithin returns payments created inside the window.
func (r *Repository) ListWithin(_ context.Context, window ports.Window) ([]*projection.Projection[*domain.Payment], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Payment]
	for _, entry := range r.payments {
		if window.Contains(entry.payment.CreatedAt) {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// List returns all payments.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Payment], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Payment], 0, len(r.payments))
	for _, entry := range r.payments {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

// Delete removes a payment.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.payments, id)
	return nil
}

func projectionCopy(entry *storedPayment) *projection.Projection[*domain.Payment] {
	return &projection.Projection[*domain.Payment]{
		Entity:   clonePayment(entry.payment),
		Metadata: entry.metadata,
	}
}

func clonePayment(p *domain.Payment) *domain.Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
