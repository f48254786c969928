package ports

import (
	"context"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service defines the payment use cases exposed to adapters.
type Service interface {
	Create(ctx context.Context, payment *domain.Payment) (*projection.Projection[*domain.Payment], error)
	Capture(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error)
	Refund(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error)
	GetByBooking(ctx context.Context, bookingID int64) (*projection.Projection[*domain.Payment], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Payment], error)
	Delete(ctx context.Context, id int64) error
}
