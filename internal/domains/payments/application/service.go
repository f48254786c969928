package application

import (
	"context"
	"errors"
	"fmt"

	notifdomain "github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	notifports "github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service orchestrates the payments bounded context use cases.
type Service struct {
	repo     ports.Repository
	gateway  ports.Gateway
	bookings ports.BookingDirectory
	notifier notifports.Publisher
	payee    PayeeResolver
}

// PayeeResolver maps a booking to the account that should be notified about
// its payments. Nil resolver disables payment notifications.
type PayeeResolver func(ctx context.Context, bookingID int64) (int64, error)

// Option configures optional collaborators.
type Option func(*Service)

// WithBookingDirectory enables booking existence checks on create.
func WithBookingDirectory(bookings ports.BookingDirectory) Option {
	return func(s *Service) { s.bookings = bookings }
}

// WithNotifier emits payment notifications via the notifications context.
func WithNotifier(notifier notifports.Publisher, payee PayeeResolver) Option {
	return func(s *Service) {
		s.notifier = notifier
		s.payee = payee
	}
}

// NewService wires the payments service with its dependencies.
func NewService(repo ports.Repository, gateway ports.Gateway, opts ...Option) *Service {
	s := &Service{repo: repo, gateway: gateway}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create records a pending payment for a booking. A second payment for the
// same booking fails on the store's unique constraint.
func (s *Service) Create(ctx context.Context, payment *domain.Payment) (*projection.Projection[*domain.Payment], error) {
	if payment == nil {
		return nil, mapError(errors.New("payment is nil"))
	}
	payment.Status = domain.StatusPending
	if err := payment.Validate(); err != nil {
		return nil, mapError(err)
	}
	if s.bookings != nil {
		exists, err := s.bookings.BookingExists(ctx, payment.BookingID)
		if err != nil {
			return nil, mapError(err)
		}
		if !exists {
			return nil, mapError(ports.ErrBookingMissing)
		}
	}
	saved, err := s.repo.Save(ctx, payment)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Capture charges the gateway for a pending payment. A declined charge marks
// the payment FAILED and surfaces the decline to the caller.
func (s *Service) Capture(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	payment := existing.Entity
	if payment.Status != domain.StatusPending {
		return nil, mapError(domain.ErrNotPending)
	}
	if s.gateway == nil {
		return nil, errors.New("payment gateway not configured")
	}

	result, err := s.gateway.Charge(ctx, ports.ChargeRequest{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
	})
	if err != nil {
		if errors.Is(err, ports.ErrChargeDeclined) {
			if markErr := payment.MarkFailed(); markErr == nil {
				_, _ = s.repo.Save(ctx, payment)
			}
		}
		return nil, mapError(err)
	}

	if err := payment.MarkPaid(result.TransactionRef); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, payment)
	if err != nil {
		return nil, mapError(err)
	}
	s.notify(ctx, saved.Entity, notifdomain.TypePaymentReceived)
	return saved, nil
}

// Refund returns a captured charge through the gateway and marks the payment
// REFUNDED.
func (s *Service) Refund(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	payment := existing.Entity
	if payment.Status != domain.StatusPaid {
		return nil, mapError(domain.ErrNotPaid)
	}
	if s.gateway == nil {
		return nil, errors.New("payment gateway not configured")
	}
	if err := s.gateway.Refund(ctx, payment.TransactionRef, payment.Amount); err != nil {
		return nil, mapError(err)
	}
	if err := payment.MarkRefunded(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, payment)
	if err != nil {
		return nil, mapError(err)
	}
	s.notify(ctx, saved.Entity, notifdomain.TypePaymentRefunded)
	return saved, nil
}

// GetByID loads a single payment.
func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetByBooking loads the payment attached to one booking.
func (s *Service) GetByBooking(ctx context.Context, bookingID int64) (*projection.Projection[*domain.Payment], error) {
	result, err := s.repo.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List returns every payment.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Payment], error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Delete removes a payment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, payment *domain.Payment, kind notifdomain.Type) {
	if s.notifier == nil || s.payee == nil {
		return
	}
	userID, err := s.payee(ctx, payment.BookingID)
	if err != nil || userID <= 0 {
		return
	}
	_ = s.notifier.Publish(ctx, userID, kind, map[string]any{
		"paymentId": payment.ID,
		"bookingId": payment.BookingID,
		"amount":    fmt.Sprintf("%.2f", payment.Amount),
	})
}

var _ ports.Service = (*Service)(nil)
