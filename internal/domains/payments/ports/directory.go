package ports

import (
	"context"
	"errors"
)

// ErrBookingMissing signals the referenced booking does not exist.
var ErrBookingMissing = errors.New("booking does not exist")

// BookingDirectory answers booking existence checks. Implemented over the
// bookings context.
type BookingDirectory interface {
	BookingExists(ctx context.Context, bookingID int64) (bool, error)
}
