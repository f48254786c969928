package pawsitserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/pawsit/pawsit-server/internal/domains/reviews/application"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// ReviewAPI handles review endpoints.
type ReviewAPI struct {
	service ports.Service
}

// NewReviewAPI wires the review endpoints to the review service.
func NewReviewAPI(service ports.Service) ReviewAPI {
	return ReviewAPI{service: service}
}

// CreateReview records a review for a booking.
func (api ReviewAPI) CreateReview(c *gin.Context) {
	var payload Review
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := domain.NewReview(
		payload.ID,
		payload.BookingID,
		payload.ReviewerID,
		payload.ReviewedUserID,
		payload.Rating,
		payload.Comment,
	)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), review)
	if err != nil {
		respondReviewServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewModel(created))
}

// GetReview returns a single review by id.
func (api ReviewAPI) GetReview(c *gin.Context) {
	id, err := parseIDParam(c, "reviewId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondReviewServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewModel(review))
}

// UpdateReview edits the rating and comment of a review.
func (api ReviewAPI) UpdateReview(c *gin.Context) {
	id, err := parseIDParam(c, "reviewId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload Review
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated := &domain.Review{
		Rating:  payload.Rating,
		Comment: payload.Comment,
	}
	review, err := api.service.Update(c.Request.Context(), id, updated)
	if err != nil {
		respondReviewServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewModel(review))
}

// DeleteReview removes a review.
func (api ReviewAPI) DeleteReview(c *gin.Context) {
	id, err := parseIDParam(c, "reviewId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondReviewServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReviews returns reviews, optionally filtered by booking or reviewed user.
func (api ReviewAPI) ListReviews(c *gin.Context) {
	bookingID, byBooking, err := parseOptionalID(c, "bookingId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	userID, byUser, err := parseOptionalID(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	var reviews []*projection.Projection[*domain.Review]
	switch {
	case byBooking:
		reviews, err = api.service.FindByBooking(ctx, bookingID)
	case byUser:
		reviews, err = api.service.FindByReviewedUser(ctx, userID)
	default:
		reviews, err = api.service.List(ctx)
	}
	if err != nil {
		respondReviewServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewModels(reviews))
}

func respondReviewServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ports.ErrDuplicateReview):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, app.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func toReviewModel(review *projection.Projection[*domain.Review]) Review {
	if review == nil || review.Entity == nil {
		return Review{}
	}
	entity := review.Entity
	return Review{
		ID:             entity.ID,
		BookingID:      entity.BookingID,
		ReviewerID:     entity.ReviewerID,
		ReviewedUserID: entity.ReviewedUserID,
		Rating:         entity.Rating,
		Comment:        entity.Comment,
	}
}

func toReviewModels(reviews []*projection.Projection[*domain.Review]) []Review {
	models := make([]Review, 0, len(reviews))
	for _, review := range reviews {
		models = append(models, toReviewModel(review))
	}
	return models
}
