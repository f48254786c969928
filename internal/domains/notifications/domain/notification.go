package domain

import (
	"errors"
	"time"
)

// Type identifies the event a notification reports.
type Type string

const (
	TypeBookingRequest   Type = "BOOKING_REQUEST"
	TypeBookingConfirmed Type = "BOOKING_CONFIRMED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
	TypeBookingCompleted Type = "BOOKING_COMPLETED"
	TypePaymentReceived  Type = "PAYMENT_RECEIVED"
	TypePaymentRefunded  Type = "PAYMENT_REFUNDED"
	TypeNewReview        Type = "NEW_REVIEW"
)

// KnownTypes lists every notification type the platform emits.
var KnownTypes = []Type{
	TypeBookingRequest,
	TypeBookingConfirmed,
	TypeBookingCancelled,
	TypeBookingCompleted,
	TypePaymentReceived,
	TypePaymentRefunded,
	TypeNewReview,
}

var (
	ErrInvalidUser  = errors.New("user id must be greater than zero")
	ErrInvalidType  = errors.New("notification type is invalid")
	ErrEmptyMessage = errors.New("notification message must not be empty")
	ErrAlreadyRead  = errors.New("notification is already read")
)

// Notification is a message delivered to one user about a platform event.
type Notification struct {
	ID        int64
	UserID    int64
	Type      Type
	Message   string
	Data      map[string]any
	IsRead    bool
	CreatedAt time.Time
}

// NewNotification builds an unread notification for a user.
func NewNotification(id, userID int64, kind Type, message string) (*Notification, error) {
	n := &Notification{ID: id}
	if err := n.assignUser(userID); err != nil {
		return nil, err
	}
	if err := n.SetType(kind); err != nil {
		return nil, err
	}
	if err := n.SetMessage(message); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notification) assignUser(userID int64) error {
	if userID <= 0 {
		return ErrInvalidUser
	}
	n.UserID = userID
	return nil
}

// IsKnown reports whether the type is one the platform emits.
func (t Type) IsKnown() bool {
	switch t {
	case TypeBookingRequest, TypeBookingConfirmed, TypeBookingCancelled,
		TypeBookingCompleted, TypePaymentReceived, TypePaymentRefunded, TypeNewReview:
		return true
	default:
		return false
	}
}

// SetType validates and stores the notification type.
func (n *Notification) SetType(kind Type) error {
	if !kind.IsKnown() {
		return ErrInvalidType
	}
	n.Type = kind
	return nil
}

// SetMessage stores the human-readable text shown to the user.
func (n *Notification) SetMessage(message string) error {
	if message == "" {
		return ErrEmptyMessage
	}
	n.Message = message
	return nil
}

// AttachData sets the structured payload carried alongside the message.
func (n *Notification) AttachData(data map[string]any) {
	if len(data) == 0 {
		n.Data = nil
		return
	}
	copied := make(map[string]any, len(data))
	for k, v := range data {
		copied[k] = v
	}
	n.Data = copied
}

// MarkRead flips the read flag. Reading twice is rejected so callers can
// surface the stale state to the client.
func (n *Notification) MarkRead() error {
	if n.IsRead {
		return ErrAlreadyRead
	}
	n.IsRead = true
	return nil
}

// Validate re-applies core invariants for persistence.
func (n *Notification) Validate() error {
	if err := n.assignUser(n.UserID); err != nil {
		return err
	}
	if err := n.SetType(n.Type); err != nil {
		return err
	}
	return n.SetMessage(n.Message)
}
