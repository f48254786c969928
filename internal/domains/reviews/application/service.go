package application

import (
	"context"
	"errors"
	"strconv"

	notifdomain "github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	notifports "github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Service orchestrates the reviews bounded context use cases.
type Service struct {
	repo     ports.Repository
	bookings ports.BookingDirectory
	ratings  ports.RatingRecorder
	notifier notifports.Publisher
}

// Option configures optional collaborators.
type Option func(*Service)

// WithBookingDirectory enables booking existence checks on create.
func WithBookingDirectory(bookings ports.BookingDirectory) Option {
	return func(s *Service) { s.bookings = bookings }
}

// WithRatingRecorder folds accepted reviews into the reviewed user's rating.
func WithRatingRecorder(ratings ports.RatingRecorder) Option {
	return func(s *Service) { s.ratings = ratings }
}

// WithNotifier announces new reviews to the reviewed user.
func WithNotifier(notifier notifports.Publisher) Option {
	return func(s *Service) { s.notifier = notifier }
}

// NewService wires the reviews service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create stores a new review. A second review by the same reviewer for the
// same booking fails on the store's composite unique constraint.
func (s *Service) Create(ctx context.Context, review *domain.Review) (*projection.Projection[*domain.Review], error) {
	if review == nil {
		return nil, mapError(errors.New("review is nil"))
	}
	if err := review.Validate(); err != nil {
		return nil, mapError(err)
	}
	if s.bookings != nil {
		exists, err := s.bookings.BookingExists(ctx, review.BookingID)
		if err != nil {
			return nil, mapError(err)
		}
		if !exists {
			return nil, mapError(ports.ErrBookingMissing)
		}
	}
	saved, err := s.repo.Save(ctx, review)
	if err != nil {
		return nil, mapError(err)
	}
	if s.ratings != nil {
		if err := s.ratings.RecordReview(ctx, saved.Entity.ReviewedUserID, saved.Entity.Rating); err != nil {
			return nil, mapError(err)
		}
	}
	if s.notifier != nil {
		_ = s.notifier.Publish(ctx, saved.Entity.ReviewedUserID, notifdomain.TypeNewReview, map[string]any{
			"reviewId":  saved.Entity.ID,
			"bookingId": saved.Entity.BookingID,
			"rating":    strconv.Itoa(saved.Entity.Rating),
		})
	}
	return saved, nil
}

// GetByID loads a single review.
func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Review], error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Update edits the rating or comment of a stored review. Booking and parties
// are immutable. The users running average is not rebalanced retroactively.
func (s *Service) Update(ctx context.Context, id int64, updated *domain.Review) (*projection.Projection[*domain.Review], error) {
	if updated == nil {
		return nil, mapError(errors.New("review is nil"))
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	target := existing.Entity
	if updated.Rating != 0 {
		if err := target.SetRating(updated.Rating); err != nil {
			return nil, mapError(err)
		}
	}
	if updated.Comment != "" {
		target.SetComment(updated.Comment)
	}
	saved, err := s.repo.Save(ctx, target)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// FindByBooking returns the reviews attached to one booking.
func (s *Service) FindByBooking(ctx context.Context, bookingID int64) ([]*projection.Projection[*domain.Review], error) {
	result, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindByReviewedUser returns the reviews received by one user.
func (s *Service) FindByReviewedUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Review], error) {
	result, err := s.repo.FindByReviewedUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List returns every review.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Review], error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
