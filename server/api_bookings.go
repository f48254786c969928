package pawsitserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	app "github.com/pawsit/pawsit-server/internal/domains/bookings/application"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// BookingAPI handles booking lifecycle endpoints.
type BookingAPI struct {
	service ports.Service
}

// NewBookingAPI wires the booking endpoints to the booking service.
func NewBookingAPI(service ports.Service) BookingAPI {
	return BookingAPI{service: service}
}

// CreateBooking schedules a new engagement between an owner and a sitter.
func (api BookingAPI) CreateBooking(c *gin.Context) {
	var payload Booking
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	booking, err := domain.NewBooking(
		payload.ID,
		payload.OwnerID,
		payload.SitterID,
		payload.PetIDs,
		payload.StartDate,
		payload.EndDate,
		payload.TotalAmount,
	)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), booking)
	if err != nil {
		respondBookingServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingModel(created))
}

// GetBooking returns a single booking by id.
func (api BookingAPI) GetBooking(c *gin.Context) {
	id, err := parseIDParam(c, "bookingId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	booking, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondBookingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingModel(booking))
}

// UpdateBooking edits the pets, schedule, and amount of a booking. Parties
// and status are immutable here; status moves through ChangeBookingStatus.
func (api BookingAPI) UpdateBooking(c *gin.Context) {
	id, err := parseIDParam(c, "bookingId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload Booking
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated := &domain.Booking{
		PetIDs:      payload.PetIDs,
		TotalAmount: payload.TotalAmount,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
	}
	booking, err := api.service.Update(c.Request.Context(), id, updated)
	if err != nil {
		respondBookingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingModel(booking))
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeBookingStatus moves a booking to the next lifecycle state.
func (api BookingAPI) ChangeBookingStatus(c *gin.Context) {
	id, err := parseIDParam(c, "bookingId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload changeStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	booking, err := api.service.ChangeStatus(c.Request.Context(), id, domain.Status(payload.Status))
	if err != nil {
		respondBookingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingModel(booking))
}

// DeleteBooking removes a booking.
func (api BookingAPI) DeleteBooking(c *gin.Context) {
	id, err := parseIDParam(c, "bookingId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondBookingServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBookings returns bookings, optionally filtered by owner, sitter, or a
// comma-separated status list.
func (api BookingAPI) ListBookings(c *gin.Context) {
	ownerID, byOwner, err := parseOptionalID(c, "ownerId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	sitterID, bySitter, err := parseOptionalID(c, "sitterId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	var bookings []*projection.Projection[*domain.Booking]
	switch {
	case byOwner:
		bookings, err = api.service.FindByOwner(ctx, ownerID)
	case bySitter:
		bookings, err = api.service.FindBySitter(ctx, sitterID)
	case c.Query("status") != "":
		var statuses []domain.Status
		for _, raw := range strings.Split(c.Query("status"), ",") {
			statuses = append(statuses, domain.Status(strings.TrimSpace(raw)))
		}
		bookings, err = api.service.FindByStatus(ctx, statuses)
	default:
		bookings, err = api.service.List(ctx)
	}
	if err != nil {
		respondBookingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingModels(bookings))
}

func respondBookingServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrTerminalStatus):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, app.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func toBookingModel(booking *projection.Projection[*domain.Booking]) Booking {
	if booking == nil || booking.Entity == nil {
		return Booking{}
	}
	entity := booking.Entity
	return Booking{
		ID:          entity.ID,
		OwnerID:     entity.OwnerID,
		SitterID:    entity.SitterID,
		PetIDs:      entity.PetIDs,
		Status:      string(entity.Status),
		TotalAmount: entity.TotalAmount,
		StartDate:   entity.StartDate,
		EndDate:     entity.EndDate,
		CreatedAt:   booking.Metadata.CreatedAt,
	}
}

func toBookingModels(bookings []*projection.Projection[*domain.Booking]) []Booking {
	models := make([]Booking, 0, len(bookings))
	for _, booking := range bookings {
		models = append(models, toBookingModel(booking))
	}
	return models
}
