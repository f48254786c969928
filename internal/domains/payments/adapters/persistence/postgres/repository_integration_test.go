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

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
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

	// TranslateError turns the booking_id unique violation into
	// gorm.ErrDuplicatedKey, which Save maps to ports.ErrDuplicateBooking.
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

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	payment, err := domain.NewPayment(0, 55, 120)
	require.NoError(t, err)

	saved, err := repo.Save(ctx, payment)
	require.NoError(t, err)
	assert.NotZero(t, saved.Entity.ID)
	assert.Equal(t, saved.Entity.ID, payment.ID)

	retrieved, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(55), retrieved.Entity.BookingID)
	assert.Equal(t, 120.0, retrieved.Entity.Amount)
	assert.Equal(t, domain.StatusPending, retrieved.Entity.Status)
}

func TestPostgresRepository_DuplicateBookingConflicts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewPayment(0, 55, 120)
	require.NoError(t, err)
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewPayment(0, 55, 60)
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, ports.ErrDuplicateBooking)
}

func TestPostgresRepository_SaveUpdatesStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	payment, err := domain.NewPayment(0, 55, 120)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, payment)
	require.NoError(t, err)

	require.NoError(t, payment.MarkPaid("txn_123"))
	updated, err := repo.Save(ctx, payment)
	require.NoError(t, err)

	assert.Equal(t, saved.Entity.ID, updated.Entity.ID)
	assert.Equal(t, domain.StatusPaid, updated.Entity.Status)
	assert.Equal(t, "txn_123", updated.Entity.TransactionRef)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPostgresRepository_GetByBooking(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	payment, err := domain.NewPayment(0, 55, 120)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, payment)
	require.NoError(t, err)

	retrieved, err := repo.GetByBooking(ctx, 55)
	require.NoError(t, err)
	assert.Equal(t, saved.Entity.ID, retrieved.Entity.ID)

	_, err = repo.GetByBooking(ctx, 404)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
