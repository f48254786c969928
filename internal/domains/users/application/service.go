package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/domains/users/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service orchestrates the users bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

// NewService wires the users service with its dependencies.
func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

// Create registers a new account.
func (s *Service) Create(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if user == nil {
		return nil, mapError(errors.New("user is nil"))
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single account.
func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.User], error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Update applies a profile edit on top of the stored account.
func (s *Service) Update(ctx context.Context, id int64, updated *domain.User) (*projection.Projection[*domain.User], error) {
	if updated == nil {
		return nil, mapError(errors.New("user is nil"))
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	updated.ID = existing.Entity.ID
	if updated.Password == "" {
		updated.Password = existing.Entity.Password
	}
	updated.Rating = existing.Entity.Rating
	updated.ReviewCount = existing.Entity.ReviewCount
	if err := updated.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes an account and its sessions.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	_ = s.sessions.Delete(ctx, existing.Entity.Email)
	return mapError(s.repo.Delete(ctx, id))
}

// List exposes every account for admin and analytics use cases.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.User], error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindByRole returns accounts holding the requested role.
func (s *Service) FindByRole(ctx context.Context, role domain.Role) ([]*projection.Projection[*domain.User], error) {
	if role != domain.RoleOwner && role != domain.RoleSitter {
		return nil, mapError(domain.ErrInvalidRole)
	}
	result, err := s.repo.FindByRole(ctx, role)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// RecordReview folds a review rating into the account's running average.
func (s *Service) RecordReview(ctx context.Context, id int64, rating int) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	user := existing.Entity
	if err := user.RecordReview(rating); err != nil {
		return mapError(err)
	}
	if _, err := s.repo.Save(ctx, user); err != nil {
		return mapError(err)
	}
	return nil
}

// Login checks credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", ports.ErrInvalidCredentials
	}
	stored, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ports.ErrInvalidCredentials
		}
		return "", mapError(err)
	}
	if !stored.Entity.CheckPassword(password) {
		return "", ports.ErrInvalidCredentials
	}
	token := fmt.Sprintf("%s:%d", email, time.Now().UnixNano())
	if err := s.sessions.Save(ctx, email, token); err != nil {
		return "", mapError(err)
	}
	return token, nil
}

// Logout drops any session held for the account.
func (s *Service) Logout(ctx context.Context, email string) {
	if strings.TrimSpace(email) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, email)
}

var _ ports.Service = (*Service)(nil)
