package ports

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository is the outbound persistence port for the users context.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.User], error)
	GetByEmail(ctx context.Context, email string) (*projection.Projection[*domain.User], error)
	FindByRole(ctx context.Context, role domain.Role) ([]*projection.Projection[*domain.User], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.User], error)
	Delete(ctx context.Context, id int64) error
}
