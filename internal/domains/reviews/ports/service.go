package ports

import (
	"context"

	"github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service defines the review use cases exposed to adapters.
type Service interface {
	Create(ctx context.Context, review *domain.Review) (*projection.Projection[*domain.Review], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Review], error)
	Update(ctx context.Context, id int64, updated *domain.Review) (*projection.Projection[*domain.Review], error)
	Delete(ctx context.Context, id int64) error
	FindByBooking(ctx context.Context, bookingID int64) ([]*projection.Projection[*domain.Review], error)
	FindByReviewedUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Review], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Review], error)
}
