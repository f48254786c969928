package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingdomain "github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	petdomain "github.com/pawsit/pawsit-server/internal/domains/pets/domain"
)

func TestSummarize_ComputesCompletionRate(t *testing.T) {
	counts := Counts{Users: 3, Bookings: 4, Pets: 5, Payments: 2, Reviews: 1}
	summary := Summarize(counts, 2, 1, 150.50)

	assert.Equal(t, 4, summary.Bookings)
	assert.Equal(t, 2, summary.CompletedBookings)
	assert.Equal(t, 1, summary.PendingBookings)
	assert.Equal(t, 150.50, summary.TotalRevenue)
	assert.Equal(t, 50.0, summary.CompletionRate)
}

func TestSummarize_NoBookingsYieldsZeroRate(t *testing.T) {
	summary := Summarize(Counts{}, 0, 0, 0)

	assert.Equal(t, 0.0, summary.CompletionRate)
	assert.False(t, summary.CompletionRate != summary.CompletionRate, "rate must not be NaN")
}

func TestStatusHistogram_SeedsEveryKnownStatus(t *testing.T) {
	histogram, err := StatusHistogram(nil)
	require.NoError(t, err)

	require.Len(t, histogram, len(bookingdomain.KnownStatuses))
	for _, status := range bookingdomain.KnownStatuses {
		count, ok := histogram[status]
		assert.True(t, ok, "missing bucket for %s", status)
		assert.Equal(t, 0, count)
	}
}

func TestStatusHistogram_CountsSumToInput(t *testing.T) {
	statuses := []bookingdomain.Status{
		bookingdomain.StatusPending,
		bookingdomain.StatusPending,
		bookingdomain.StatusCompleted,
		bookingdomain.StatusCancelled,
	}
	histogram, err := StatusHistogram(statuses)
	require.NoError(t, err)

	assert.Equal(t, 2, histogram[bookingdomain.StatusPending])
	assert.Equal(t, 1, histogram[bookingdomain.StatusCompleted])
	assert.Equal(t, 1, histogram[bookingdomain.StatusCancelled])

	total := 0
	for _, count := range histogram {
		total += count
	}
	assert.Equal(t, len(statuses), total)
}

func TestStatusHistogram_UnknownStatusFailsLoudly(t *testing.T) {
	_, err := StatusHistogram([]bookingdomain.Status{"ARCHIVED"})
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestAverageRating_Empty(t *testing.T) {
	summary := AverageRating(nil)
	assert.Equal(t, RatingSummary{}, summary)
}

func TestAverageRating_RoundsToOneDecimal(t *testing.T) {
	summary := AverageRating([]int{5, 4, 3})
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalReviews)

	summary = AverageRating([]int{5, 4})
	assert.Equal(t, 4.5, summary.AverageRating)

	// 4.25 rounds half away from zero at the tenths digit.
	summary = AverageRating([]int{4, 4, 5, 4})
	assert.Equal(t, 4.3, summary.AverageRating)
}

func TestRankSitters_PerBookingMeanNotPooled(t *testing.T) {
	// One booking averages 4.0 from two reviews, the other has none and
	// contributes 0. The sitter average is (4.0 + 0) / 2, never (5+3)/3.
	sitters := []SitterActivity{
		{
			SitterID: 7,
			Name:     "Dana",
			Bookings: []BookingActivity{
				{Status: bookingdomain.StatusCompleted, Ratings: []int{5, 3}},
				{Status: bookingdomain.StatusPending},
			},
		},
	}
	stats := RankSitters(sitters, 10)
	require.Len(t, stats, 1)

	assert.Equal(t, 2.0, stats[0].AverageRating)
	assert.Equal(t, 2, stats[0].TotalBookings)
	assert.Equal(t, 1, stats[0].CompletedBookings)
	assert.Equal(t, 2, stats[0].TotalReviews)
	assert.Equal(t, 50.0, stats[0].CompletionRate)
}

func TestRankSitters_OrdersByCompletedDescending(t *testing.T) {
	sitters := []SitterActivity{
		{SitterID: 1, Name: "One", Bookings: completedBookings(1)},
		{SitterID: 2, Name: "Two", Bookings: completedBookings(3)},
		{SitterID: 3, Name: "Three", Bookings: completedBookings(2)},
	}
	stats := RankSitters(sitters, 10)
	require.Len(t, stats, 3)

	assert.Equal(t, int64(2), stats[0].SitterID)
	assert.Equal(t, int64(3), stats[1].SitterID)
	assert.Equal(t, int64(1), stats[2].SitterID)
}

func TestRankSitters_TiesKeepInputOrder(t *testing.T) {
	sitters := []SitterActivity{
		{SitterID: 10, Bookings: completedBookings(1)},
		{SitterID: 20, Bookings: completedBookings(1)},
		{SitterID: 30, Bookings: completedBookings(1)},
	}
	stats := RankSitters(sitters, 10)
	require.Len(t, stats, 3)

	assert.Equal(t, int64(10), stats[0].SitterID)
	assert.Equal(t, int64(20), stats[1].SitterID)
	assert.Equal(t, int64(30), stats[2].SitterID)
}

func TestRankSitters_TruncatesToLimit(t *testing.T) {
	sitters := []SitterActivity{
		{SitterID: 1, Bookings: completedBookings(3)},
		{SitterID: 2, Bookings: completedBookings(2)},
		{SitterID: 3, Bookings: completedBookings(1)},
	}
	stats := RankSitters(sitters, 2)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(1), stats[0].SitterID)
	assert.Equal(t, int64(2), stats[1].SitterID)
}

func TestRankSitters_NonPositiveLimitYieldsEmpty(t *testing.T) {
	sitters := []SitterActivity{{SitterID: 1, Bookings: completedBookings(1)}}

	assert.Empty(t, RankSitters(sitters, 0))
	assert.Empty(t, RankSitters(sitters, -5))
}

func TestRankSitters_NoBookings(t *testing.T) {
	stats := RankSitters([]SitterActivity{{SitterID: 9, Name: "Idle"}}, 10)
	require.Len(t, stats, 1)

	assert.Equal(t, 0, stats[0].TotalBookings)
	assert.Equal(t, 0.0, stats[0].CompletionRate)
	assert.Equal(t, 0.0, stats[0].AverageRating)
}

func TestRankSitters_IsPure(t *testing.T) {
	sitters := []SitterActivity{
		{SitterID: 1, Bookings: completedBookings(1)},
		{SitterID: 2, Bookings: completedBookings(2)},
	}
	first := RankSitters(sitters, 10)
	second := RankSitters(sitters, 10)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), sitters[0].SitterID, "input must not be reordered")
}

func TestPetTypeBreakdown_GroupsHeadlineTypes(t *testing.T) {
	types := []petdomain.Type{
		petdomain.TypeDog,
		petdomain.TypeDog,
		petdomain.TypeCat,
		petdomain.TypeBird,
		petdomain.TypeFish,
		petdomain.TypeOther,
	}
	breakdown := PetTypeBreakdown(types)

	assert.Equal(t, 6, breakdown.Total)
	assert.Equal(t, 2, breakdown.Dogs)
	assert.Equal(t, 1, breakdown.Cats)
	assert.Equal(t, 3, breakdown.Others)
	assert.Equal(t, breakdown.Total, breakdown.Dogs+breakdown.Cats+breakdown.Others)
	assert.InDelta(t, 100.0, breakdown.DogPercentage+breakdown.CatPercentage+breakdown.OtherPercentage, 1e-9)
}

func TestPetTypeBreakdown_EmptyPopulation(t *testing.T) {
	breakdown := PetTypeBreakdown(nil)

	assert.Equal(t, 0, breakdown.Total)
	assert.Equal(t, 0.0, breakdown.DogPercentage)
	assert.Equal(t, 0.0, breakdown.CatPercentage)
	assert.Equal(t, 0.0, breakdown.OtherPercentage)
}

func completedBookings(n int) []BookingActivity {
	bookings := make([]BookingActivity, n)
	for i := range bookings {
		bookings[i] = BookingActivity{Status: bookingdomain.StatusCompleted}
	}
	return bookings
}
