package ports

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrDuplicateReview = errors.New("reviewer already reviewed this booking")
)

// Repository is the outbound persistence port for the reviews context. The
// one-review-per-reviewer-per-booking rule is enforced by the store.
type Repository interface {
	Save(ctx context.Context, review *domain.Review) (*projection.Projection[*domain.Review], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Review], error)
	FindByBooking(ctx context.Context, bookingID int64) ([]*projection.Projection[*domain.Review], error)
	FindByReviewedUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Review], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Review], error)
	Delete(ctx context.Context, id int64) error
}
