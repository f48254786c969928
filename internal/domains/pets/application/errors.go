package application

import (
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/domains/pets/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid pet input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidOwner) ||
		errors.Is(err, domain.ErrInvalidType) ||
		errors.Is(err, domain.ErrInvalidAge) ||
		errors.Is(err, domain.ErrInvalidWeight) ||
		errors.Is(err, ports.ErrOwnerMissing) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
