package ports

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the user use cases exposed to adapters (inbound/driving port).
type Service interface {
	Create(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.User], error)
	Update(ctx context.Context, id int64, updated *domain.User) (*projection.Projection[*domain.User], error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*projection.Projection[*domain.User], error)
	FindByRole(ctx context.Context, role domain.Role) ([]*projection.Projection[*domain.User], error)
	RecordReview(ctx context.Context, id int64, rating int) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, email string)
}
