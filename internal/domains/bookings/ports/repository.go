package ports

import (
	"context"
	"errors"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var ErrNotFound = errors.New("booking not found")

// Window bounds a query to bookings created inside the half-open interval
// [From, To). Nil endpoints leave that side unbounded.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether the timestamp falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	if w.From != nil && ts.Before(*w.From) {
		return false
	}
	if w.To != nil && !ts.Before(*w.To) {
		return false
	}
	return true
}

// Repository is the outbound persistence port for the bookings context.
type Repository interface {
	Save(ctx context.Context, booking *domain.Booking) (*projection.Projection[*domain.Booking], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Booking], error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Booking], error)
	FindBySitter(ctx context.Context, sitterID int64) ([]*projection.Projection[*domain.Booking], error)
	FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Booking], error)
	ListWithin(ctx context.Context, window Window) ([]*projection.Projection[*domain.Booking], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Booking], error)
	Delete(ctx context.Context, id int64) error
}
