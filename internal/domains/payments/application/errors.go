package application

import (
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid payment input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidBooking) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrNotPending) ||
		errors.Is(err, domain.ErrNotPaid) ||
		errors.Is(err, ports.ErrBookingMissing) ||
		errors.Is(err, ports.ErrDuplicateBooking) ||
		errors.Is(err, ports.ErrChargeDeclined) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
