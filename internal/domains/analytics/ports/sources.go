package ports

import (
	"context"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/analytics/domain"
	bookingdomain "github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	bookingports "github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	paymentdomain "github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	paymentports "github.com/pawsit/pawsit-server/internal/domains/payments/ports"
	petdomain "github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	reviewdomain "github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	userdomain "github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// Window bounds the analytics queries to entities created inside the
// half-open interval [From, To). Nil endpoints leave that side unbounded.
type Window struct {
	From *time.Time
	To   *time.Time
}

// BookingWindow converts to the bookings context window type.
func (w Window) BookingWindow() bookingports.Window {
	return bookingports.Window{From: w.From, To: w.To}
}

// PaymentWindow converts to the payments context window type.
func (w Window) PaymentWindow() paymentports.Window {
	return paymentports.Window{From: w.From, To: w.To}
}

// The source interfaces below are read-only slices of the other contexts'
// repositories; the concrete repositories satisfy them implicitly.

// BookingSource feeds booking collections into the aggregator.
type BookingSource interface {
	ListWithin(ctx context.Context, window bookingports.Window) ([]*projection.Projection[*bookingdomain.Booking], error)
}

// PaymentSource feeds payment collections into the aggregator.
type PaymentSource interface {
	ListWithin(ctx context.Context, window paymentports.Window) ([]*projection.Projection[*paymentdomain.Payment], error)
}

// ReviewSource feeds review collections into the aggregator.
type ReviewSource interface {
	List(ctx context.Context) ([]*projection.Projection[*reviewdomain.Review], error)
	FindByReviewedUser(ctx context.Context, userID int64) ([]*projection.Projection[*reviewdomain.Review], error)
}

// PetSource feeds pet collections into the aggregator.
type PetSource interface {
	List(ctx context.Context) ([]*projection.Projection[*petdomain.Pet], error)
}

// UserSource feeds user collections into the aggregator.
type UserSource interface {
	List(ctx context.Context) ([]*projection.Projection[*userdomain.User], error)
	FindByRole(ctx context.Context, role userdomain.Role) ([]*projection.Projection[*userdomain.User], error)
}

// Service defines the analytics use cases exposed to adapters. Every call is
// a one-shot read-then-compute; nothing is cached or retried.
type Service interface {
	DashboardSummary(ctx context.Context, window Window) (*domain.Summary, error)
	BookingStatusHistogram(ctx context.Context, window Window) (map[bookingdomain.Status]int, error)
	UserRating(ctx context.Context, userID int64) (domain.RatingSummary, error)
	TopSitters(ctx context.Context, window Window, limit int) ([]domain.SitterStat, error)
	PetBreakdown(ctx context.Context) (domain.PetBreakdown, error)
}
