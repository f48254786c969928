package application

import (
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid booking input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidOwner) ||
		errors.Is(err, domain.ErrInvalidSitter) ||
		errors.Is(err, domain.ErrSameParties) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrTerminalStatus) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrInvalidInterval) ||
		errors.Is(err, domain.ErrNoPets) ||
		errors.Is(err, ports.ErrOwnerMissing) ||
		errors.Is(err, ports.ErrSitterMissing) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
