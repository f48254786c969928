package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	bookingdomain "github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	petdomain "github.com/pawsit/pawsit-server/internal/domains/pets/domain"
)

// ErrUnknownStatus signals a booking status outside the known lifecycle.
var ErrUnknownStatus = errors.New("unknown booking status")

// DefaultLeaderboardLimit caps the sitter leaderboard when no limit is given.
const DefaultLeaderboardLimit = 10

// Counts carries the raw entity totals feeding the dashboard summary.
type Counts struct {
	Users    int
	Bookings int
	Pets     int
	Payments int
	Reviews  int
}

// Summary is the dashboard rollup returned to clients.
type Summary struct {
	Counts
	CompletedBookings int
	PendingBookings   int
	TotalRevenue      float64
	CompletionRate    float64
}

// Summarize computes the dashboard rollup. The total>0 guard is load-bearing:
// an unguarded 0/0 must never leak out as NaN.
func Summarize(counts Counts, completed, pending int, paidSum float64) Summary {
	rate := 0.0
	if counts.Bookings > 0 {
		rate = float64(completed) / float64(counts.Bookings) * 100
	}
	return Summary{
		Counts:            counts,
		CompletedBookings: completed,
		PendingBookings:   pending,
		TotalRevenue:      paidSum,
		CompletionRate:    rate,
	}
}

// StatusHistogram counts bookings per lifecycle state. Every known state is
// present in the result even at zero. A status outside the known set is an
// error, matching the strict accounting the dashboard depends on.
func StatusHistogram(statuses []bookingdomain.Status) (map[bookingdomain.Status]int, error) {
	histogram := make(map[bookingdomain.Status]int, len(bookingdomain.KnownStatuses))
	for _, status := range bookingdomain.KnownStatuses {
		histogram[status] = 0
	}
	for _, status := range statuses {
		if !status.IsKnown() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
		}
		histogram[status]++
	}
	return histogram, nil
}

// RatingSummary pairs an average with the review count it was computed over.
type RatingSummary struct {
	AverageRating float64
	TotalReviews  int
}

// AverageRating computes the mean of the ratings rounded to one decimal,
// half away from zero. An empty input yields {0, 0}.
func AverageRating(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, rating := range ratings {
		sum += rating
	}
	mean := float64(sum) / float64(len(ratings))
	return RatingSummary{
		AverageRating: roundTenths(mean),
		TotalReviews:  len(ratings),
	}
}

// BookingActivity is one booking of a sitter together with its review ratings.
type BookingActivity struct {
	Status  bookingdomain.Status
	Ratings []int
}

// SitterActivity is the input for the leaderboard: a sitter and their bookings.
type SitterActivity struct {
	SitterID int64
	Name     string
	Bookings []BookingActivity
}

// SitterStat is one leaderboard row.
type SitterStat struct {
	SitterID          int64
	Name              string
	TotalBookings     int
	CompletedBookings int
	TotalReviews      int
	CompletionRate    float64
	AverageRating     float64
}

// RankSitters builds the sitter leaderboard. The average rating is a
// two-level mean: each booking contributes its own mean rating (0 when it has
// no reviews), and those per-booking means are averaged over all bookings.
// A booking with many reviews does not outweigh a booking with one.
// The sort is stable on completedBookings descending; ties keep input order.
// limit <= 0 yields an empty leaderboard.
func RankSitters(sitters []SitterActivity, limit int) []SitterStat {
	if limit <= 0 {
		return []SitterStat{}
	}

	stats := make([]SitterStat, 0, len(sitters))
	for _, sitter := range sitters {
		stat := SitterStat{
			SitterID:      sitter.SitterID,
			Name:          sitter.Name,
			TotalBookings: len(sitter.Bookings),
		}
		perBookingMeanSum := 0.0
		for _, booking := range sitter.Bookings {
			if booking.Status == bookingdomain.StatusCompleted {
				stat.CompletedBookings++
			}
			stat.TotalReviews += len(booking.Ratings)
			if len(booking.Ratings) > 0 {
				sum := 0
				for _, rating := range booking.Ratings {
					sum += rating
				}
				perBookingMeanSum += float64(sum) / float64(len(booking.Ratings))
			}
		}
		if stat.TotalBookings > 0 {
			stat.CompletionRate = float64(stat.CompletedBookings) / float64(stat.TotalBookings) * 100
		}
		divisor := stat.TotalBookings
		if divisor < 1 {
			divisor = 1
		}
		stat.AverageRating = roundTenths(perBookingMeanSum / float64(divisor))
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].CompletedBookings > stats[j].CompletedBookings
	})

	if limit < len(stats) {
		stats = stats[:limit]
	}
	return stats
}

// PetBreakdown groups the pet population by headline type.
type PetBreakdown struct {
	Total           int
	Dogs            int
	Cats            int
	Others          int
	DogPercentage   float64
	CatPercentage   float64
	OtherPercentage float64
}

// PetTypeBreakdown tallies pets into dogs, cats, and everything else
// (birds, fish, other). Percentages are 0 when there are no pets.
func PetTypeBreakdown(types []petdomain.Type) PetBreakdown {
	breakdown := PetBreakdown{Total: len(types)}
	for _, petType := range types {
		switch petType {
		case petdomain.TypeDog:
			breakdown.Dogs++
		case petdomain.TypeCat:
			breakdown.Cats++
		default:
			breakdown.Others++
		}
	}
	if breakdown.Total > 0 {
		total := float64(breakdown.Total)
		breakdown.DogPercentage = float64(breakdown.Dogs) / total * 100
		breakdown.CatPercentage = float64(breakdown.Cats) / total * 100
		breakdown.OtherPercentage = float64(breakdown.Others) / total * 100
	}
	return breakdown
}

// roundTenths rounds half away from zero at the tenths digit.
func roundTenths(x float64) float64 {
	return math.Round(x*10) / 10
}
