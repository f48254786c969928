package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service orchestrates the notifications bounded context use cases.
type Service struct {
	repo       ports.Repository
	dispatcher ports.Dispatcher
}

// NewService wires the notifications service. A nil dispatcher disables
// external delivery.
func NewService(repo ports.Repository, dispatcher ports.Dispatcher) *Service {
	if dispatcher == nil {
		dispatcher = ports.NoopDispatcher{}
	}
	return &Service{repo: repo, dispatcher: dispatcher}
}

// Create stores a notification and hands it to the delivery channel.
func (s *Service) Create(ctx context.Context, notification *domain.Notification) (*projection.Projection[*domain.Notification], error) {
	if notification == nil {
		return nil, mapError(errors.New("notification is nil"))
	}
	if err := notification.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, notification)
	if err != nil {
		return nil, mapError(err)
	}
	_ = s.dispatcher.Dispatch(ctx, saved.Entity)
	return saved, nil
}

// Publish raises a platform event for a user, deriving the display message
// from the event type.
func (s *Service) Publish(ctx context.Context, userID int64, kind domain.Type, data map[string]any) error {
	notification, err := domain.NewNotification(0, userID, kind, messageFor(kind))
	if err != nil {
		return mapError(err)
	}
	notification.AttachData(data)
	_, err = s.Create(ctx, notification)
	return err
}

// GetByID loads a single notification.
func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Notification], error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindByUser returns every notification addressed to one user.
func (s *Service) FindByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error) {
	result, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindUnreadByUser returns the user's notifications still awaiting a read.
func (s *Service) FindUnreadByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error) {
	result, err := s.repo.FindUnreadByUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// MarkRead flips the read flag on a stored notification.
func (s *Service) MarkRead(ctx context.Context, id int64) (*projection.Projection[*domain.Notification], error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.Entity.MarkRead(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, existing.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a notification.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func messageFor(kind domain.Type) string {
	switch kind {
	case domain.TypeBookingRequest:
		return "You have a new booking request"
	case domain.TypeBookingConfirmed:
		return "Your booking has been confirmed"
	case domain.TypeBookingCancelled:
		return "A booking has been cancelled"
	case domain.TypeBookingCompleted:
		return "Your booking has been completed"
	case domain.TypePaymentReceived:
		return "A payment has been received"
	case domain.TypePaymentRefunded:
		return "A payment has been refunded"
	case domain.TypeNewReview:
		return "You have received a new review"
	default:
		return fmt.Sprintf("Platform event: %s", kind)
	}
}

var _ ports.Service = (*Service)(nil)
