package ports

import (
	"context"

	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service defines the pet use cases exposed to adapters (inbound/driving port).
type Service interface {
	Register(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error)
	Update(ctx context.Context, id int64, updated *domain.Pet) (*projection.Projection[*domain.Pet], error)
	Delete(ctx context.Context, id int64) error
	FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Pet], error)
}
