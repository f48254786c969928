package application

import (
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid notification input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidUser) ||
		errors.Is(err, domain.ErrInvalidType) ||
		errors.Is(err, domain.ErrEmptyMessage) ||
		errors.Is(err, domain.ErrAlreadyRead) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
