package ports

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var ErrNotFound = errors.New("pet not found")

// Repository is the outbound persistence port for the pets context.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Pet], error)
	Delete(ctx context.Context, id int64) error
}
