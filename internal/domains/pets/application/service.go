package application

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/domains/pets/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo   ports.Repository
	owners ports.OwnerDirectory
}

// NewService wires the pets service with its dependencies. A nil owner
// directory skips the relation check (used by tests and the worker).
func NewService(repo ports.Repository, owners ports.OwnerDirectory) *Service {
	return &Service{repo: repo, owners: owners}
}

// Register persists a new pet aggregate after checking the owner relation.
func (s *Service) Register(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, mapError(errors.New("pet is nil"))
	}
	if err := validate(pet); err != nil {
		return nil, mapError(err)
	}
	if s.owners != nil {
		exists, err := s.owners.OwnerExists(ctx, pet.OwnerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, mapError(ports.ErrOwnerMissing)
		}
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Update overrides an existing pet with new state. The owner link is immutable.
func (s *Service) Update(ctx context.Context, id int64, updated *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if updated == nil {
		return nil, mapError(errors.New("pet is nil"))
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	updated.ID = existing.Entity.ID
	updated.OwnerID = existing.Entity.OwnerID
	if err := validate(updated); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a pet.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// FindByOwner returns the pets registered by one owner.
func (s *Service) FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error) {
	result, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List exposes all pets for reporting or admin use cases.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Pet], error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func validate(pet *domain.Pet) error {
	if err := pet.AssignOwner(pet.OwnerID); err != nil {
		return err
	}
	if err := pet.Rename(pet.Name); err != nil {
		return err
	}
	if err := pet.SetType(pet.Type); err != nil {
		return err
	}
	if err := pet.SetAge(pet.Age); err != nil {
		return err
	}
	if pet.WeightKg != 0 {
		if err := pet.SetWeight(pet.WeightKg); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
