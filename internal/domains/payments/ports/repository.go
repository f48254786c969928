package ports

import (
	"context"
	"errors"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var (
	ErrNotFound         = errors.New("payment not found")
	ErrDuplicateBooking = errors.New("booking already has a payment")
)

// Window bounds a query to payments created inside the half-open interval
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

// Repository is the outbound persistence port for the payments context. The
// one-payment-per-booking rule is enforced by the store, not the caller.
type Repository interface {
	Save(ctx context.Context, payment *domain.Payment) (*projection.Projection[*domain.Payment], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error)
	GetByBooking(ctx context.Context, bookingID int64) (*projection.Projection[*domain.Payment], error)
	ListWithin(ctx context.Context, window Window) ([]*projection.Projection[*domain.Payment], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Payment], error)
	Delete(ctx context.Context, id int64) error
}
