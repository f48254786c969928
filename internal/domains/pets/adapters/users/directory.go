package users

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/pets/ports"
	userdomain "github.com/pawsit/pawsit-server/internal/domains/users/domain"
	userports "github.com/pawsit/pawsit-server/internal/domains/users/ports"
)

var _ ports.OwnerDirectory = (*Directory)(nil)

// Directory answers pet ownership checks against the users context.
type Directory struct {
	users userports.Repository
}

// NewDirectory wires the directory over the users repository.
func NewDirectory(users userports.Repository) *Directory {
	return &Directory{users: users}
}

// OwnerExists reports whether an owner account with the given id exists.
func (d *Directory) OwnerExists(ctx context.Context, ownerID int64) (bool, error) {
	if d == nil || d.users == nil {
		return false, errors.New("user directory not configured")
	}
	result, err := d.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, userports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return result.Entity.Role == userdomain.RoleOwner, nil
}
