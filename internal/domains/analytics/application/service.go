package application

import (
	"context"

	"github.com/pawsit/pawsit-server/internal/domains/analytics/domain"
	"github.com/pawsit/pawsit-server/internal/domains/analytics/ports"
	bookingdomain "github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	paymentdomain "github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	petdomain "github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	userdomain "github.com/pawsit/pawsit-server/internal/domains/users/domain"
)

// Service aggregates marketplace activity into dashboard statistics. Each
// operation loads the collections it needs and hands them to the pure
// functions in domain.
type Service struct {
	bookings ports.BookingSource
	payments ports.PaymentSource
	reviews  ports.ReviewSource
	pets     ports.PetSource
	users    ports.UserSource
}

// NewService wires the analytics service over the read-only sources.
func NewService(
	bookings ports.BookingSource,
	payments ports.PaymentSource,
	reviews ports.ReviewSource,
	pets ports.PetSource,
	users ports.UserSource,
) *Service {
	return &Service{
		bookings: bookings,
		payments: payments,
		reviews:  reviews,
		pets:     pets,
		users:    users,
	}
}

// DashboardSummary rolls up entity counts, revenue, and completion rate for
// bookings and payments created inside the window.
func (s *Service) DashboardSummary(ctx context.Context, window ports.Window) (*domain.Summary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListWithin(ctx, window.BookingWindow())
	if err != nil {
		return nil, err
	}
	pets, err := s.pets.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListWithin(ctx, window.PaymentWindow())
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}

	completed, pending := 0, 0
	for _, booking := range bookings {
		switch booking.Entity.Status {
		case bookingdomain.StatusCompleted:
			completed++
		case bookingdomain.StatusPending:
			pending++
		}
	}
	paidSum := 0.0
	for _, payment := range payments {
		if payment.Entity.Status == paymentdomain.StatusPaid {
			paidSum += payment.Entity.Amount
		}
	}

	summary := domain.Summarize(domain.Counts{
		Users:    len(users),
		Bookings: len(bookings),
		Pets:     len(pets),
		Payments: len(payments),
		Reviews:  len(reviews),
	}, completed, pending, paidSum)
	return &summary, nil
}

// BookingStatusHistogram buckets the windowed bookings by lifecycle state.
func (s *Service) BookingStatusHistogram(ctx context.Context, window ports.Window) (map[bookingdomain.Status]int, error) {
	bookings, err := s.bookings.ListWithin(ctx, window.BookingWindow())
	if err != nil {
		return nil, err
	}
	statuses := make([]bookingdomain.Status, 0, len(bookings))
	for _, booking := range bookings {
		statuses = append(statuses, booking.Entity.Status)
	}
	return domain.StatusHistogram(statuses)
}

// UserRating averages the ratings a user has received.
func (s *Service) UserRating(ctx context.Context, userID int64) (domain.RatingSummary, error) {
	reviews, err := s.reviews.FindByReviewedUser(ctx, userID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	ratings := make([]int, 0, len(reviews))
	for _, review := range reviews {
		ratings = append(ratings, review.Entity.Rating)
	}
	return domain.AverageRating(ratings), nil
}

// TopSitters builds the sitter leaderboard over the windowed bookings.
// limit <= 0 falls back to the default leaderboard size.
func (s *Service) TopSitters(ctx context.Context, window ports.Window, limit int) ([]domain.SitterStat, error) {
	if limit <= 0 {
		limit = domain.DefaultLeaderboardLimit
	}
	sitters, err := s.users.FindByRole(ctx, userdomain.RoleSitter)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListWithin(ctx, window.BookingWindow())
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}

	ratingsByBooking := make(map[int64][]int, len(reviews))
	for _, review := range reviews {
		ratingsByBooking[review.Entity.BookingID] = append(ratingsByBooking[review.Entity.BookingID], review.Entity.Rating)
	}
	bookingsBySitter := make(map[int64][]domain.BookingActivity, len(sitters))
	for _, booking := range bookings {
		entity := booking.Entity
		bookingsBySitter[entity.SitterID] = append(bookingsBySitter[entity.SitterID], domain.BookingActivity{
			Status:  entity.Status,
			Ratings: ratingsByBooking[entity.ID],
		})
	}

	activity := make([]domain.SitterActivity, 0, len(sitters))
	for _, sitter := range sitters {
		activity = append(activity, domain.SitterActivity{
			SitterID: sitter.Entity.ID,
			Name:     sitter.Entity.Name,
			Bookings: bookingsBySitter[sitter.Entity.ID],
		})
	}
	return domain.RankSitters(activity, limit), nil
}

// PetBreakdown groups the registered pet population by headline type.
func (s *Service) PetBreakdown(ctx context.Context) (domain.PetBreakdown, error) {
	pets, err := s.pets.List(ctx)
	if err != nil {
		return domain.PetBreakdown{}, err
	}
	types := make([]petdomain.Type, 0, len(pets))
	for _, pet := range pets {
		types = append(types, pet.Entity.Type)
	}
	return domain.PetTypeBreakdown(types), nil
}

var _ ports.Service = (*Service)(nil)
