package ports

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var (
	ErrOwnerMissing  = errors.New("owner account does not exist")
	ErrSitterMissing = errors.New("sitter account does not exist")
)

// PartyDirectory answers whether the accounts referenced by a booking exist
// with the expected roles. Implemented over the users context.
type PartyDirectory interface {
	OwnerExists(ctx context.Context, ownerID int64) (bool, error)
	SitterExists(ctx context.Context, sitterID int64) (bool, error)
}

// Service defines the booking use cases exposed to adapters (inbound/driving port).
type Service interface {
	Create(ctx context.Context, booking *domain.Booking) (*projection.Projection[*domain.Booking], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Booking], error)
	Update(ctx context.Context, id int64, updated *domain.Booking) (*projection.Projection[*domain.Booking], error)
	ChangeStatus(ctx context.Context, id int64, next domain.Status) (*projection.Projection[*domain.Booking], error)
	Delete(ctx context.Context, id int64) error
	FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Booking], error)
	FindBySitter(ctx context.Context, sitterID int64) ([]*projection.Projection[*domain.Booking], error)
	FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Booking], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Booking], error)
}
