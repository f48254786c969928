//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	"github.com/pawsit/pawsit-server/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("pawsit_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newBooking(t *testing.T, sitterID int64, start time.Time) *domain.Booking {
	t.Helper()
	booking, err := domain.NewBooking(0, 10, sitterID, []int64{100, 101}, start, start.AddDate(0, 0, 3), 150)
	require.NoError(t, err)
	return booking
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	booking := newBooking(t, 20, start)

	saved, err := repo.Save(ctx, booking)
	require.NoError(t, err)
	assert.NotZero(t, saved.Entity.ID)
	assert.Equal(t, saved.Entity.ID, booking.ID)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), retrieved.Entity.OwnerID)
	assert.Equal(t, int64(20), retrieved.Entity.SitterID)
	assert.Equal(t, []int64{100, 101}, retrieved.Entity.PetIDs)
	assert.Equal(t, domain.StatusPending, retrieved.Entity.Status)
	assert.Equal(t, 150.0, retrieved.Entity.TotalAmount)
}

func TestPostgresRepository_SaveUpdatesStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	booking := newBooking(t, 20, start)
	saved, err := repo.Save(ctx, booking)
	require.NoError(t, err)
	originalCreatedAt := saved.Metadata.CreatedAt

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, booking.TransitionTo(domain.StatusConfirmed))
	updated, err := repo.Save(ctx, booking)
	require.NoError(t, err)

	assert.Equal(t, saved.Entity.ID, updated.Entity.ID)
	assert.Equal(t, domain.StatusConfirmed, updated.Entity.Status)
	assert.Equal(t, originalCreatedAt.Unix(), updated.Metadata.CreatedAt.Unix())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPostgresRepository_FindByStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	statuses := []domain.Status{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCompleted,
	}
	for _, status := range statuses {
		booking := newBooking(t, 20, start)
		if status != domain.StatusPending {
			require.NoError(t, booking.TransitionTo(status))
		}
		_, err := repo.Save(ctx, booking)
		require.NoError(t, err)
	}

	completed, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	open, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusPending, domain.StatusConfirmed})
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestPostgresRepository_FindByOwnerAndSitter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for _, sitterID := range []int64{20, 20, 30} {
		_, err := repo.Save(ctx, newBooking(t, sitterID, start))
		require.NoError(t, err)
	}

	bySitter, err := repo.FindBySitter(ctx, 20)
	require.NoError(t, err)
	assert.Len(t, bySitter, 2)

	byOwner, err := repo.FindByOwner(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, byOwner, 3)
}

func TestPostgresRepository_ListWithin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	saved, err := repo.Save(ctx, newBooking(t, 20, start))
	require.NoError(t, err)

	from := saved.Metadata.CreatedAt.Add(-time.Minute)
	to := saved.Metadata.CreatedAt.Add(time.Minute)

	inside, err := repo.ListWithin(ctx, ports.Window{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, inside, 1)

	outside, err := repo.ListWithin(ctx, ports.Window{From: &to})
	require.NoError(t, err)
	assert.Empty(t, outside)
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	saved, err := repo.Save(ctx, newBooking(t, 20, start))
	require.NoError(t, err)

	err = repo.Delete(ctx, saved.Entity.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, saved.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, saved.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
