package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	notifdomain "github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	notifports "github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service orchestrates the bookings bounded context use cases.
type Service struct {
	repo     ports.Repository
	parties  ports.PartyDirectory
	notifier notifports.Publisher
}

// Option configures optional collaborators.
type Option func(*Service)

// WithPartyDirectory enables owner/sitter existence checks on create.
func WithPartyDirectory(parties ports.PartyDirectory) Option {
	return func(s *Service) { s.parties = parties }
}

// WithNotifier emits lifecycle notifications to the involved accounts.
func WithNotifier(notifier notifports.Publisher) Option {
	return func(s *Service) { s.notifier = notifier }
}

// NewService wires the bookings service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create persists a new booking in the PENDING state after checking that both
// parties exist.
func (s *Service) Create(ctx context.Context, booking *domain.Booking) (*projection.Projection[*domain.Booking], error) {
	if booking == nil {
		return nil, mapError(errors.New("booking is nil"))
	}
	booking.Status = domain.StatusPending
	if err := booking.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := s.checkParties(ctx, booking); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, booking)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, saved.Entity.SitterID, notifdomain.TypeBookingRequest, saved.Entity)
	return saved, nil
}

// GetByID loads a single booking aggregate.
func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Booking], error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Update applies an edit on top of the stored booking. Parties are immutable
// and status changes go through ChangeStatus so the state machine holds.
func (s *Service) Update(ctx context.Context, id int64, updated *domain.Booking) (*projection.Projection[*domain.Booking], error) {
	if updated == nil {
		return nil, mapError(errors.New("booking is nil"))
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	target := existing.Entity
	if len(updated.PetIDs) > 0 {
		if err := target.ReplacePets(updated.PetIDs); err != nil {
			return nil, mapError(err)
		}
	}
	if !updated.StartDate.IsZero() || !updated.EndDate.IsZero() {
		start, end := updated.StartDate, updated.EndDate
		if start.IsZero() {
			start = target.StartDate
		}
		if end.IsZero() {
			end = target.EndDate
		}
		if err := target.Reschedule(start, end); err != nil {
			return nil, mapError(err)
		}
	}
	if updated.TotalAmount != 0 {
		if err := target.SetAmount(updated.TotalAmount); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, target)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ChangeStatus advances the booking lifecycle, enforcing that terminal states
// never transition further.
func (s *Service) ChangeStatus(ctx context.Context, id int64, next domain.Status) (*projection.Projection[*domain.Booking], error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	target := existing.Entity
	if err := target.TransitionTo(next); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, target)
	if err != nil {
		return nil, mapError(err)
	}
	switch next {
	case domain.StatusConfirmed:
		s.publish(ctx, saved.Entity.OwnerID, notifdomain.TypeBookingConfirmed, saved.Entity)
	case domain.StatusCancelled:
		s.publish(ctx, saved.Entity.OwnerID, notifdomain.TypeBookingCancelled, saved.Entity)
		s.publish(ctx, saved.Entity.SitterID, notifdomain.TypeBookingCancelled, saved.Entity)
	case domain.StatusCompleted:
		s.publish(ctx, saved.Entity.OwnerID, notifdomain.TypeBookingCompleted, saved.Entity)
	}
	return saved, nil
}

// Delete removes a booking.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// FindByOwner returns the bookings placed by one owner.
func (s *Service) FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Booking], error) {
	result, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindBySitter returns the bookings assigned to one sitter.
func (s *Service) FindBySitter(ctx context.Context, sitterID int64) ([]*projection.Projection[*domain.Booking], error) {
	result, err := s.repo.FindBySitter(ctx, sitterID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindByStatus searches bookings matching any of the provided statuses.
func (s *Service) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Booking], error) {
	for _, status := range statuses {
		if !status.IsKnown() {
			return nil, mapError(domain.ErrInvalidStatus)
		}
	}
	result, err := s.repo.FindByStatus(ctx, statuses)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List exposes all bookings for reporting or admin use cases.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Booking], error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *Service) checkParties(ctx context.Context, booking *domain.Booking) error {
	if s.parties == nil {
		return nil
	}
	ownerOK, err := s.parties.OwnerExists(ctx, booking.OwnerID)
	if err != nil {
		return err
	}
	if !ownerOK {
		return ports.ErrOwnerMissing
	}
	sitterOK, err := s.parties.SitterExists(ctx, booking.SitterID)
	if err != nil {
		return err
	}
	if !sitterOK {
		return ports.ErrSitterMissing
	}
	return nil
}

func (s *Service) publish(ctx context.Context, userID int64, kind notifdomain.Type, booking *domain.Booking) {
	if s.notifier == nil {
		return
	}
	payload := map[string]any{
		"bookingId": booking.ID,
		"status":    string(booking.Status),
		"amount":    fmt.Sprintf("%.2f", booking.TotalAmount),
	}
	_ = s.notifier.Publish(ctx, userID, kind, payload)
}

var _ ports.Service = (*Service)(nil)
