package bookings

import (
	"context"
	"errors"

	bookingports "github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/ports"
)

var _ ports.BookingDirectory = (*Directory)(nil)

// Directory answers booking existence checks against the bookings context.
type Directory struct {
	bookings bookingports.Repository
}

// NewDirectory wires the directory over the bookings repository.
func NewDirectory(bookings bookingports.Repository) *Directory {
	return &Directory{bookings: bookings}
}

// BookingExists reports whether a booking with the given id exists.
func (d *Directory) BookingExists(ctx context.Context, bookingID int64) (bool, error) {
	if d == nil || d.bookings == nil {
		return false, errors.New("booking directory not configured")
	}
	if _, err := d.bookings.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
