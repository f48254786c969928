package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu       sync.RWMutex
	bookings map[int64]*storedBooking
	nextID   int64
	now      func() time.Time
}

type storedBooking struct {
	booking  *domain.Booking
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		bookings: map[int64]*storedBooking{},
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

// Save inserts or replaces a booking, assigning an identifier to new ones.
func (r *Repository) Save(_ context.Context, booking *domain.Booking) (*projection.Projection[*domain.Booking], error) {
	if booking == nil {
		return nil, errors.New("cannot save nil booking")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == 0 {
		booking.ID = r.nextID
		r.nextID++
	}

	entry, ok := r.bookings[booking.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = metadata.CreatedAt
	}

	stored := &storedBooking{booking: cloneBooking(booking), metadata: metadata}
	r.bookings[booking.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a booking if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Booking], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.bookings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// FindByOwner returns the bookings placed by one owner.
func (r *Repository) FindByOwner(_ context.Context, ownerID int64) ([]*projection.Projection[*domain.Booking], error) {
	return r.filter(func(b *domain.Booking) bool { return b.OwnerID == ownerID })
}

// FindBySitter returns the bookings assigned to one sitter.
func (r *Repository) FindBySitter(_ context.Context, sitterID int64) ([]*projection.Projection[*domain.Booking], error) {
	return r.filter(func(b *domain.Booking) bool { return b.SitterID == sitterID })
}

// FindByStatus returns bookings matching any of the provided statuses.
func (r *Repository) FindByStatus(_ context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Booking], error) {
	wanted := make(map[domain.Status]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}
	return r.filter(func(b *domain.Booking) bool {
		_, ok := wanted[b.Status]
		return ok
	})
}

// ListWithin returns bookings created inside the window.
func (r *Repository) ListWithin(_ context.Context, window ports.Window) ([]*projection.Projection[*domain.Booking], error) {
	return r.filter(func(b *domain.Booking) bool { return window.Contains(b.CreatedAt) })
}

// List returns all bookings.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Booking], error) {
	return r.filter(func(*domain.Booking) bool { return true })
}

// Delete removes a booking.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *Repository) filter(keep func(*domain.Booking) bool) ([]*projection.Projection[*domain.Booking], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Booking]
	for _, entry := range r.bookings {
		if keep(entry.booking) {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

func projectionCopy(entry *storedBooking) *projection.Projection[*domain.Booking] {
	return &projection.Projection[*domain.Booking]{
		Entity:   cloneBooking(entry.booking),
		Metadata: entry.metadata,
	}
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	if b == nil {
		return nil
	}
	clone := *b
	clone.PetIDs = append([]int64{}, b.PetIDs...)
	return &clone
}
