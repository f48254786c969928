package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle state of a booking.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// KnownStatuses lists every valid lifecycle state in display order.
var KnownStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

var (
	ErrInvalidOwner    = errors.New("owner id must be greater than zero")
	ErrInvalidSitter   = errors.New("sitter id must be greater than zero")
	ErrSameParties     = errors.New("owner and sitter must be different accounts")
	ErrInvalidStatus   = errors.New("booking status is invalid")
	ErrTerminalStatus  = errors.New("booking is in a terminal state")
	ErrInvalidAmount   = errors.New("total amount must be zero or greater")
	ErrInvalidInterval = errors.New("end date must be after start date")
	ErrNoPets          = errors.New("at least one pet is required")
)

// Booking models a scheduled pet-care engagement between an owner and a sitter.
type Booking struct {
	ID          int64
	OwnerID     int64
	SitterID    int64
	PetIDs      []int64
	Status      Status
	TotalAmount float64
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
}

// NewBooking validates the invariants and builds a new Booking aggregate in
// the PENDING state.
func NewBooking(id, ownerID, sitterID int64, petIDs []int64, start, end time.Time, amount float64) (*Booking, error) {
	b := &Booking{ID: id, Status: StatusPending}
	if err := b.assignParties(ownerID, sitterID); err != nil {
		return nil, err
	}
	if err := b.ReplacePets(petIDs); err != nil {
		return nil, err
	}
	if err := b.Reschedule(start, end); err != nil {
		return nil, err
	}
	if err := b.SetAmount(amount); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Booking) assignParties(ownerID, sitterID int64) error {
	if ownerID <= 0 {
		return ErrInvalidOwner
	}
	if sitterID <= 0 {
		return ErrInvalidSitter
	}
	if ownerID == sitterID {
		return ErrSameParties
	}
	b.OwnerID = ownerID
	b.SitterID = sitterID
	return nil
}

// ReplacePets swaps the set of pets covered by the engagement.
func (b *Booking) ReplacePets(petIDs []int64) error {
	if len(petIDs) == 0 {
		return ErrNoPets
	}
	b.PetIDs = append([]int64{}, petIDs...)
	return nil
}

// Reschedule validates and stores the care window.
func (b *Booking) Reschedule(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidInterval
	}
	b.StartDate = start
	b.EndDate = end
	return nil
}

// SetAmount stores the agreed price for the engagement.
func (b *Booking) SetAmount(amount float64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	b.TotalAmount = amount
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsKnown reports whether the status is one of the five lifecycle states.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// TransitionTo moves the booking to the next lifecycle state. Terminal states
// (COMPLETED, CANCELLED) admit no further transitions; between non-terminal
// known states any move is allowed.
func (b *Booking) TransitionTo(next Status) error {
	if !next.IsKnown() {
		return ErrInvalidStatus
	}
	if b.Status.IsTerminal() && next != b.Status {
		return ErrTerminalStatus
	}
	b.Status = next
	return nil
}

// Validate re-applies core invariants for persistence.
func (b *Booking) Validate() error {
	if err := b.assignParties(b.OwnerID, b.SitterID); err != nil {
		return err
	}
	if err := b.ReplacePets(b.PetIDs); err != nil {
		return err
	}
	if err := b.Reschedule(b.StartDate, b.EndDate); err != nil {
		return err
	}
	if err := b.SetAmount(b.TotalAmount); err != nil {
		return err
	}
	if !b.Status.IsKnown() {
		return ErrInvalidStatus
	}
	return nil
}
