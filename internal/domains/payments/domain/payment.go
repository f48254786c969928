package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle state of a payment.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusFailed   Status = "FAILED"
	StatusRefunded Status = "REFUNDED"
)

var (
	ErrInvalidBooking = errors.New("booking id must be greater than zero")
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrInvalidStatus  = errors.New("payment status is invalid")
	ErrNotPending     = errors.New("payment is not pending")
	ErrNotPaid        = errors.New("payment is not paid")
)

// Payment records the charge for a single booking.
type Payment struct {
	ID             int64
	BookingID      int64
	Amount         float64
	Status         Status
	TransactionRef string
	CreatedAt      time.Time
}

// NewPayment builds a pending payment for a booking.
func NewPayment(id, bookingID int64, amount float64) (*Payment, error) {
	p := &Payment{ID: id, Status: StatusPending}
	if err := p.assignBooking(bookingID); err != nil {
		return nil, err
	}
	if err := p.SetAmount(amount); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Payment) assignBooking(bookingID int64) error {
	if bookingID <= 0 {
		return ErrInvalidBooking
	}
	p.BookingID = bookingID
	return nil
}

// SetAmount stores the charge amount.
func (p *Payment) SetAmount(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	p.Amount = amount
	return nil
}

// IsKnown reports whether the status is one of the four lifecycle states.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// MarkPaid records a successful charge. Only pending payments can be paid.
func (p *Payment) MarkPaid(transactionRef string) error {
	if p.Status != StatusPending {
		return ErrNotPending
	}
	p.Status = StatusPaid
	p.TransactionRef = transactionRef
	return nil
}

// MarkFailed records a declined charge. Only pending payments can fail.
func (p *Payment) MarkFailed() error {
	if p.Status != StatusPending {
		return ErrNotPending
	}
	p.Status = StatusFailed
	return nil
}

// MarkRefunded records a refund of a captured charge.
func (p *Payment) MarkRefunded() error {
	if p.Status != StatusPaid {
		return ErrNotPaid
	}
	p.Status = StatusRefunded
	return nil
}

// Validate re-applies core invariants for persistence.
func (p *Payment) Validate() error {
	if err := p.assignBooking(p.BookingID); err != nil {
		return err
	}
	if err := p.SetAmount(p.Amount); err != nil {
		return err
	}
	if !p.Status.IsKnown() {
		return ErrInvalidStatus
	}
	return nil
}
