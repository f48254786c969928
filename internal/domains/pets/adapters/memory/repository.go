package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/domains/pets/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	nextID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets:   map[int64]*storedPet{},
		nextID: 1,
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a pet while maintaining metadata.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if pet.ID == 0 {
		pet.ID = r.nextID
		r.nextID++
	}

	entry, ok := r.pets[pet.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}

	stored := &storedPet{pet: clonePet(pet), metadata: metadata}
	r.pets[pet.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// FindByOwner returns pets linked to the owner account.
func (r *Repository) FindByOwner(_ context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Pet]
	for _, entry := range r.pets {
		if entry.pet.OwnerID == ownerID {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// List returns all pets.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Pet], 0, len(r.pets))
	for _, entry := range r.pets {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

// Delete removes a pet.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func projectionCopy(entry *storedPet) *projection.Projection[*domain.Pet] {
	return &projection.Projection[*domain.Pet]{
		Entity:   clonePet(entry.pet),
		Metadata: entry.metadata,
	}
}

func clonePet(p *domain.Pet) *domain.Pet {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
