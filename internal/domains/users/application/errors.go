package application

import (
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid user input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, domain.ErrInvalidRating) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
