package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermemory "github.com/pawsit/pawsit-server/internal/domains/users/adapters/memory"
	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/domains/users/ports"
)

func newTestService() (*Service, *usermemory.SessionStore) {
	sessions := usermemory.NewSessionStore()
	return NewService(usermemory.NewRepository(), sessions), sessions
}

func seedUser(t *testing.T, svc *Service, email string, role domain.Role) int64 {
	t.Helper()
	user, err := domain.NewUser(0, email, "Test User", role)
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("secret"))
	saved, err := svc.Create(context.Background(), user)
	require.NoError(t, err)
	return saved.Entity.ID
}

func TestCreate_AssignsIDAndMetadata(t *testing.T) {
	svc, _ := newTestService()

	user, err := domain.NewUser(0, "alice@example.com", "Alice", domain.RoleOwner)
	require.NoError(t, err)
	saved, err := svc.Create(context.Background(), user)

	require.NoError(t, err)
	assert.NotZero(t, saved.Entity.ID)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())
	assert.False(t, saved.Metadata.UpdatedAt.IsZero())
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &domain.User{Email: "not-an-email", Name: "X", Role: domain.RoleOwner})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	seedUser(t, svc, "alice@example.com", domain.RoleOwner)

	dup, err := domain.NewUser(0, "alice@example.com", "Other Alice", domain.RoleSitter)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dup)
	require.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestUpdate_PreservesRatingAndPassword(t *testing.T) {
	svc, _ := newTestService()
	id := seedUser(t, svc, "bob@example.com", domain.RoleSitter)
	require.NoError(t, svc.RecordReview(context.Background(), id, 5))

	updated, err := svc.Update(context.Background(), id, &domain.User{
		Email: "bob@example.com",
		Name:  "Bob Renamed",
		Role:  domain.RoleSitter,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bob Renamed", updated.Entity.Name)
	assert.Equal(t, 5.0, updated.Entity.Rating)
	assert.Equal(t, 1, updated.Entity.ReviewCount)
	assert.True(t, updated.Entity.CheckPassword("secret"))
}

func TestDelete_RemovesAccountAndSessions(t *testing.T) {
	svc, sessions := newTestService()
	id := seedUser(t, svc, "carol@example.com", domain.RoleOwner)
	_, err := svc.Login(context.Background(), "carol@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, sessions.Token("carol@example.com"))

	require.NoError(t, svc.Delete(context.Background(), id))

	_, err = svc.GetByID(context.Background(), id)
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Empty(t, sessions.Token("carol@example.com"))
}

func TestFindByRole_FiltersAccounts(t *testing.T) {
	svc, _ := newTestService()
	seedUser(t, svc, "owner@example.com", domain.RoleOwner)
	seedUser(t, svc, "sitter1@example.com", domain.RoleSitter)
	seedUser(t, svc, "sitter2@example.com", domain.RoleSitter)

	sitters, err := svc.FindByRole(context.Background(), domain.RoleSitter)
	require.NoError(t, err)
	assert.Len(t, sitters, 2)

	_, err = svc.FindByRole(context.Background(), "ADMIN")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordReview_FoldsRunningAverage(t *testing.T) {
	svc, _ := newTestService()
	id := seedUser(t, svc, "dana@example.com", domain.RoleSitter)

	require.NoError(t, svc.RecordReview(context.Background(), id, 5))
	require.NoError(t, svc.RecordReview(context.Background(), id, 4))

	stored, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.Entity.Rating)
	assert.Equal(t, 2, stored.Entity.ReviewCount)

	err = svc.RecordReview(context.Background(), id, 6)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_IssuesToken(t *testing.T) {
	svc, sessions := newTestService()
	seedUser(t, svc, "eve@example.com", domain.RoleOwner)

	token, err := svc.Login(context.Background(), "eve@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, token, sessions.Token("eve@example.com"))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	seedUser(t, svc, "eve@example.com", domain.RoleOwner)

	_, err := svc.Login(context.Background(), "eve@example.com", "wrong")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogin_UnknownAccountHidesExistence(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), "ghost@example.com", "secret")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogout_DropsSession(t *testing.T) {
	svc, sessions := newTestService()
	seedUser(t, svc, "frank@example.com", domain.RoleOwner)
	_, err := svc.Login(context.Background(), "frank@example.com", "secret")
	require.NoError(t, err)

	svc.Logout(context.Background(), "frank@example.com")
	assert.Empty(t, sessions.Token("frank@example.com"))
}
