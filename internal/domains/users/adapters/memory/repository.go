package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/domains/users/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	users  map[int64]*storedUser
	nextID int64
	now    func() time.Time
}

type storedUser struct {
	user     *domain.User
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		users:  map[int64]*storedUser{},
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

// Save inserts or replaces a user while maintaining metadata. The email
// uniqueness rule from the relational schema is enforced here too.
func (r *Repository) Save(_ context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.users {
		if id != user.ID && strings.EqualFold(entry.user.Email, user.Email) {
			return nil, ports.ErrDuplicateEmail
		}
	}

	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}

	entry, ok := r.users[user.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}

	stored := &storedUser{user: cloneUser(user), metadata: metadata}
	r.users[user.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a user if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// GetByEmail fetches a user by its unique email.
func (r *Repository) GetByEmail(_ context.Context, email string) (*projection.Projection[*domain.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.users {
		if strings.EqualFold(entry.user.Email, email) {
			return projectionCopy(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

// FindByRole returns users holding the requested role.
func (r *Repository) FindByRole(_ context.Context, role domain.Role) ([]*projection.Projection[*domain.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.User]
	for _, entry := range r.users {
		if entry.user.Role == role {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// List returns all users.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.User], 0, len(r.users))
	for _, entry := range r.users {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

// Delete removes a user.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func projectionCopy(entry *storedUser) *projection.Projection[*domain.User] {
	return &projection.Projection[*domain.User]{
		Entity:   cloneUser(entry.user),
		Metadata: entry.metadata,
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
