package pawsitserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawsit/pawsit-server/internal/domains/analytics/domain"
	"github.com/pawsit/pawsit-server/internal/domains/analytics/ports"
)

// AnalyticsAPI handles the reporting endpoints.
type AnalyticsAPI struct {
	service ports.Service
}

// NewAnalyticsAPI wires the reporting endpoints to the analytics service.
func NewAnalyticsAPI(service ports.Service) AnalyticsAPI {
	return AnalyticsAPI{service: service}
}

// GetDashboardSummary returns the marketplace rollup for an optional window.
func (api AnalyticsAPI) GetDashboardSummary(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	summary, err := api.service.DashboardSummary(c.Request.Context(), window)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toSummaryModel(summary))
}

// GetBookingStatusHistogram returns booking counts per lifecycle state.
func (api AnalyticsAPI) GetBookingStatusHistogram(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	histogram, err := api.service.BookingStatusHistogram(c.Request.Context(), window)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, histogram)
}

// GetTopSitters returns the sitter leaderboard for an optional window.
func (api AnalyticsAPI) GetTopSitters(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Errorf("invalid limit: %q", raw))
			return
		}
	}
	sitters, err := api.service.TopSitters(c.Request.Context(), window, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toSitterStatModels(sitters))
}

// GetPetBreakdown returns the pet population grouped by headline type.
func (api AnalyticsAPI) GetPetBreakdown(c *gin.Context) {
	breakdown, err := api.service.PetBreakdown(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, PetBreakdown{
		Total:           breakdown.Total,
		Dogs:            breakdown.Dogs,
		Cats:            breakdown.Cats,
		Others:          breakdown.Others,
		DogPercentage:   breakdown.DogPercentage,
		CatPercentage:   breakdown.CatPercentage,
		OtherPercentage: breakdown.OtherPercentage,
	})
}

// GetUserRating returns the average rating a user has received.
func (api AnalyticsAPI) GetUserRating(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rating, err := api.service.UserRating(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, RatingSummary{
		AverageRating: rating.AverageRating,
		TotalReviews:  rating.TotalReviews,
	})
}

// parseWindow reads the optional startDate and endDate query parameters.
// Values are RFC 3339 timestamps or bare dates.
func parseWindow(c *gin.Context) (ports.Window, error) {
	var window ports.Window
	if raw := c.Query("startDate"); raw != "" {
		from, err := parseTimestamp(raw)
		if err != nil {
			return ports.Window{}, fmt.Errorf("invalid startDate: %q", raw)
		}
		window.From = &from
	}
	if raw := c.Query("endDate"); raw != "" {
		to, err := parseTimestamp(raw)
		if err != nil {
			return ports.Window{}, fmt.Errorf("invalid endDate: %q", raw)
		}
		window.To = &to
	}
	return window, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", raw)
}

func toSummaryModel(summary *domain.Summary) DashboardSummary {
	if summary == nil {
		return DashboardSummary{}
	}
	return DashboardSummary{
		TotalUsers:        summary.Users,
		TotalBookings:     summary.Bookings,
		TotalPets:         summary.Pets,
		TotalPayments:     summary.Payments,
		TotalReviews:      summary.Reviews,
		CompletedBookings: summary.CompletedBookings,
		PendingBookings:   summary.PendingBookings,
		TotalRevenue:      summary.TotalRevenue,
		CompletionRate:    summary.CompletionRate,
	}
}

func toSitterStatModels(sitters []domain.SitterStat) []SitterStat {
	models := make([]SitterStat, 0, len(sitters))
	for _, sitter := range sitters {
		models = append(models, SitterStat{
			SitterID:          sitter.SitterID,
			Name:              sitter.Name,
			TotalBookings:     sitter.TotalBookings,
			CompletedBookings: sitter.CompletedBookings,
			TotalReviews:      sitter.TotalReviews,
			CompletionRate:    sitter.CompletionRate,
			AverageRating:     sitter.AverageRating,
		})
	}
	return models
}
