package application

import (
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid review input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidBooking) ||
		errors.Is(err, domain.ErrInvalidReviewer) ||
		errors.Is(err, domain.ErrInvalidReviewed) ||
		errors.Is(err, domain.ErrSelfReview) ||
		errors.Is(err, domain.ErrInvalidRating) ||
		errors.Is(err, ports.ErrBookingMissing) ||
		errors.Is(err, ports.ErrDuplicateReview) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
