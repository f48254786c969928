package ports

import (
	"context"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service defines the notification use cases exposed to adapters.
type Service interface {
	Publisher

	Create(ctx context.Context, notification *domain.Notification) (*projection.Projection[*domain.Notification], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Notification], error)
	FindByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error)
	FindUnreadByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error)
	MarkRead(ctx context.Context, id int64) (*projection.Projection[*domain.Notification], error)
	Delete(ctx context.Context, id int64) error
}
