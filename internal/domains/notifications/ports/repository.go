package ports

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var ErrNotFound = errors.New("notification not found")

// Repository is the outbound persistence port for the notifications context.
type Repository interface {
	Save(ctx context.Context, notification *domain.Notification) (*projection.Projection[*domain.Notification], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Notification], error)
	FindByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error)
	FindUnreadByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Notification], error)
	Delete(ctx context.Context, id int64) error
}
