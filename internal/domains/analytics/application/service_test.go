package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsit/pawsit-server/internal/domains/analytics/ports"
	bookingmemory "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/memory"
	bookingdomain "github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	paymentmemory "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/memory"
	paymentdomain "github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	petmemory "github.com/pawsit/pawsit-server/internal/domains/pets/adapters/memory"
	petdomain "github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	reviewmemory "github.com/pawsit/pawsit-server/internal/domains/reviews/adapters/memory"
	reviewdomain "github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	usermemory "github.com/pawsit/pawsit-server/internal/domains/users/adapters/memory"
	userdomain "github.com/pawsit/pawsit-server/internal/domains/users/domain"
)

type fixture struct {
	svc      *Service
	bookings *bookingmemory.Repository
	payments *paymentmemory.Repository
	reviews  *reviewmemory.Repository
	pets     *petmemory.Repository
	users    *usermemory.Repository
}

func newFixture() *fixture {
	f := &fixture{
		bookings: bookingmemory.NewRepository(),
		payments: paymentmemory.NewRepository(),
		reviews:  reviewmemory.NewRepository(),
		pets:     petmemory.NewRepository(),
		users:    usermemory.NewRepository(),
	}
	f.svc = NewService(f.bookings, f.payments, f.reviews, f.pets, f.users)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role userdomain.Role) int64 {
	t.Helper()
	user, err := userdomain.NewUser(0, email, "User "+email, role)
	require.NoError(t, err)
	saved, err := f.users.Save(context.Background(), user)
	require.NoError(t, err)
	return saved.Entity.ID
}

func (f *fixture) addPet(t *testing.T, ownerID int64, kind petdomain.Type) {
	t.Helper()
	pet, err := petdomain.NewPet(0, ownerID, "Pet", kind)
	require.NoError(t, err)
	_, err = f.pets.Save(context.Background(), pet)
	require.NoError(t, err)
}

func (f *fixture) addBooking(t *testing.T, ownerID, sitterID int64, status bookingdomain.Status, createdAt time.Time) int64 {
	t.Helper()
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	booking, err := bookingdomain.NewBooking(0, ownerID, sitterID, []int64{1}, start, start.AddDate(0, 0, 2), 80)
	require.NoError(t, err)
	if status != bookingdomain.StatusPending {
		require.NoError(t, booking.TransitionTo(status))
	}
	booking.CreatedAt = createdAt
	saved, err := f.bookings.Save(context.Background(), booking)
	require.NoError(t, err)
	return saved.Entity.ID
}

func (f *fixture) addPayment(t *testing.T, bookingID int64, amount float64, status paymentdomain.Status) {
	t.Helper()
	payment, err := paymentdomain.NewPayment(0, bookingID, amount)
	require.NoError(t, err)
	payment.Status = status
	_, err = f.payments.Save(context.Background(), payment)
	require.NoError(t, err)
}

func (f *fixture) addReview(t *testing.T, bookingID, reviewerID, reviewedUserID int64, rating int) {
	t.Helper()
	review, err := reviewdomain.NewReview(0, bookingID, reviewerID, reviewedUserID, rating, "")
	require.NoError(t, err)
	_, err = f.reviews.Save(context.Background(), review)
	require.NoError(t, err)
}

func anytime() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestDashboardSummary_RollsUpPlatformActivity(t *testing.T) {
	f := newFixture()
	owner := f.addUser(t, "owner@example.com", userdomain.RoleOwner)
	sitter := f.addUser(t, "sitter@example.com", userdomain.RoleSitter)
	f.addPet(t, owner, petdomain.TypeDog)
	f.addPet(t, owner, petdomain.TypeCat)

	b1 := f.addBooking(t, owner, sitter, bookingdomain.StatusCompleted, anytime())
	b2 := f.addBooking(t, owner, sitter, bookingdomain.StatusCompleted, anytime())
	f.addBooking(t, owner, sitter, bookingdomain.StatusPending, anytime())
	f.addBooking(t, owner, sitter, bookingdomain.StatusConfirmed, anytime())

	f.addPayment(t, b1, 120, paymentdomain.StatusPaid)
	f.addPayment(t, b2, 60, paymentdomain.StatusPending)
	f.addReview(t, b1, owner, sitter, 5)

	summary, err := f.svc.DashboardSummary(context.Background(), ports.Window{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Users)
	assert.Equal(t, 2, summary.Pets)
	assert.Equal(t, 4, summary.Bookings)
	assert.Equal(t, 2, summary.Payments)
	assert.Equal(t, 1, summary.Reviews)
	assert.Equal(t, 2, summary.CompletedBookings)
	assert.Equal(t, 1, summary.PendingBookings)
	assert.Equal(t, 120.0, summary.TotalRevenue)
	assert.Equal(t, 50.0, summary.CompletionRate)
}

func TestDashboardSummary_WindowExcludesOlderBookings(t *testing.T) {
	f := newFixture()
	owner := f.addUser(t, "owner@example.com", userdomain.RoleOwner)
	sitter := f.addUser(t, "sitter@example.com", userdomain.RoleSitter)

	f.addBooking(t, owner, sitter, bookingdomain.StatusCompleted, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	f.addBooking(t, owner, sitter, bookingdomain.StatusCompleted, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	summary, err := f.svc.DashboardSummary(context.Background(), ports.Window{From: &from})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Bookings)
	assert.Equal(t, 100.0, summary.CompletionRate)
}

func TestBookingStatusHistogram_SeedsAllBuckets(t *testing.T) {
	f := newFixture()
	owner := f.addUser(t, "owner@example.com", userdomain.RoleOwner)
	sitter := f.addUser(t, "sitter@example.com", userdomain.RoleSitter)
	f.addBooking(t, owner, sitter, bookingdomain.StatusPending, anytime())
	f.addBooking(t, owner, sitter, bookingdomain.StatusCompleted, anytime())
	f.addBooking(t, owner, sitter, bookingdomain.StatusCompleted, anytime())

	histogram, err := f.svc.BookingStatusHistogram(context.Background(), ports.Window{})
	require.NoError(t, err)

	assert.Len(t, histogram, 5)
	assert.Equal(t, 1, histogram[bookingdomain.StatusPending])
	assert.Equal(t, 2, histogram[bookingdomain.StatusCompleted])
	assert.Equal(t, 0, histogram[bookingdomain.StatusCancelled])
}

func TestUserRating_AveragesReceivedReviews(t *testing.T) {
	f := newFixture()
	owner := f.addUser(t, "owner@example.com", userdomain.RoleOwner)
	sitter := f.addUser(t, "sitter@example.com", userdomain.RoleSitter)
	f.addReview(t, 1, owner, sitter, 5)
	f.addReview(t, 2, owner, sitter, 4)

	rating, err := f.svc.UserRating(context.Background(), sitter)
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating.AverageRating)
	assert.Equal(t, 2, rating.TotalReviews)

	empty, err := f.svc.UserRating(context.Background(), owner)
	require.NoError(t, err)
	assert.Zero(t, empty.AverageRating)
	assert.Zero(t, empty.TotalReviews)
}

func TestTopSitters_RanksByCompletedWork(t *testing.T) {
	f := newFixture()
	owner := f.addUser(t, "owner@example.com", userdomain.RoleOwner)
	busy := f.addUser(t, "busy@example.com", userdomain.RoleSitter)
	quiet := f.addUser(t, "quiet@example.com", userdomain.RoleSitter)

	first := f.addBooking(t, owner, busy, bookingdomain.StatusCompleted, anytime())
	second := f.addBooking(t, owner, busy, bookingdomain.StatusCompleted, anytime())
	third := f.addBooking(t, owner, quiet, bookingdomain.StatusCompleted, anytime())

	f.addReview(t, first, owner, busy, 4)
	f.addReview(t, third, owner, quiet, 5)
	_ = second

	stats, err := f.svc.TopSitters(context.Background(), ports.Window{}, 0)
	require.NoError(t, err)

	require.Len(t, stats, 2)
	assert.Equal(t, busy, stats[0].SitterID)
	assert.Equal(t, 2, stats[0].CompletedBookings)
	// One rated booking (4.0) and one unrated booking (0) average to 2.0.
	assert.Equal(t, 2.0, stats[0].AverageRating)
	assert.Equal(t, quiet, stats[1].SitterID)
	assert.Equal(t, 5.0, stats[1].AverageRating)
}

func TestTopSitters_HonorsLimit(t *testing.T) {
	f := newFixture()
	owner := f.addUser(t, "owner@example.com", userdomain.RoleOwner)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		sitter := f.addUser(t, email, userdomain.RoleSitter)
		f.addBooking(t, owner, sitter, bookingdomain.StatusCompleted, anytime())
	}

	stats, err := f.svc.TopSitters(context.Background(), ports.Window{}, 2)
	require.NoError(t, err)
	assert.Len(t, stats, 2)
}

func TestPetBreakdown_GroupsByHeadlineType(t *testing.T) {
	f := newFixture()
	owner := f.addUser(t, "owner@example.com", userdomain.RoleOwner)
	f.addPet(t, owner, petdomain.TypeDog)
	f.addPet(t, owner, petdomain.TypeDog)
	f.addPet(t, owner, petdomain.TypeCat)
	f.addPet(t, owner, petdomain.TypeBird)

	breakdown, err := f.svc.PetBreakdown(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, breakdown.Dogs)
	assert.Equal(t, 1, breakdown.Cats)
	assert.Equal(t, 1, breakdown.Others)
	assert.Equal(t, 4, breakdown.Total)
	assert.InDelta(t, 50.0, breakdown.DogPercentage, 0.01)
}
