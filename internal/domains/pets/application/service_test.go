package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petmemory "github.com/pawsit/pawsit-server/internal/domains/pets/adapters/memory"
	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/domains/pets/ports"
)

type stubOwnerDirectory struct {
	known map[int64]bool
}

func (d stubOwnerDirectory) OwnerExists(_ context.Context, ownerID int64) (bool, error) {
	return d.known[ownerID], nil
}

func TestRegister_Success(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), nil)

	pet, err := domain.NewPet(0, 10, "Rex", domain.TypeDog)
	require.NoError(t, err)
	saved, err := svc.Register(context.Background(), pet)

	require.NoError(t, err)
	assert.NotZero(t, saved.Entity.ID)
	assert.Equal(t, "Rex", saved.Entity.Name)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())
}

func TestRegister_UnknownOwner(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), stubOwnerDirectory{known: map[int64]bool{10: true}})

	pet, err := domain.NewPet(0, 99, "Rex", domain.TypeDog)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), pet)

	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ports.ErrOwnerMissing)
}

func TestRegister_InvalidType(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), nil)

	_, err := svc.Register(context.Background(), &domain.Pet{OwnerID: 10, Name: "Rex", Type: "DRAGON"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_EmptyTypeDefaultsToOther(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), nil)

	saved, err := svc.Register(context.Background(), &domain.Pet{OwnerID: 10, Name: "Mystery"})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeOther, saved.Entity.Type)
}

func TestUpdate_OwnerIsImmutable(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), nil)
	pet, err := domain.NewPet(0, 10, "Rex", domain.TypeDog)
	require.NoError(t, err)
	saved, err := svc.Register(context.Background(), pet)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), saved.Entity.ID, &domain.Pet{
		OwnerID: 42,
		Name:    "Rexie",
		Type:    domain.TypeDog,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), updated.Entity.OwnerID)
	assert.Equal(t, "Rexie", updated.Entity.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), nil)

	_, err := svc.Update(context.Background(), 404, &domain.Pet{OwnerID: 10, Name: "Ghost"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFindByOwner_FiltersPets(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), nil)
	for _, ownerID := range []int64{10, 10, 20} {
		pet, err := domain.NewPet(0, ownerID, "Pet", domain.TypeCat)
		require.NoError(t, err)
		_, err = svc.Register(context.Background(), pet)
		require.NoError(t, err)
	}

	pets, err := svc.FindByOwner(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, pets, 2)
}

func TestDelete_RemovesPet(t *testing.T) {
	svc := NewService(petmemory.NewRepository(), nil)
	pet, err := domain.NewPet(0, 10, "Rex", domain.TypeDog)
	require.NoError(t, err)
	saved, err := svc.Register(context.Background(), pet)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), saved.Entity.ID))
	_, err = svc.GetByID(context.Background(), saved.Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
