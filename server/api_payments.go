package pawsitserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/pawsit/pawsit-server/internal/domains/payments/application"
	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
	apierrors "github.com/pawsit/pawsit-server/internal/shared/errors"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// PaymentAPI handles payment endpoints. Capture runs through the workflow
// orchestrator so retries and decline handling live in one place.
type PaymentAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
}

// NewPaymentAPI wires the payment endpoints to the payment service and the
// capture orchestrator.
func NewPaymentAPI(service ports.Service, workflows ports.WorkflowOrchestrator) PaymentAPI {
	return PaymentAPI{service: service, workflows: workflows}
}

// CreatePayment records a pending charge for a booking.
func (api PaymentAPI) CreatePayment(c *gin.Context) {
	var payload Payment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payment, err := domain.NewPayment(payload.ID, payload.BookingID, payload.Amount)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), payment)
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentModel(created))
}

// GetPayment returns a single payment by id.
func (api PaymentAPI) GetPayment(c *gin.Context) {
	id, err := parseIDParam(c, "paymentId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payment, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentModel(payment))
}

// GetBookingPayment returns the payment attached to a booking.
func (api PaymentAPI) GetBookingPayment(c *gin.Context) {
	bookingID, err := parseIDParam(c, "bookingId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payment, err := api.service.GetByBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentModel(payment))
}

// CapturePayment charges a pending payment through the gateway.
func (api PaymentAPI) CapturePayment(c *gin.Context) {
	id, err := parseIDParam(c, "paymentId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payment, err := api.workflows.CapturePayment(c.Request.Context(), id)
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentModel(payment))
}

// RefundPayment returns a captured charge.
func (api PaymentAPI) RefundPayment(c *gin.Context) {
	id, err := parseIDParam(c, "paymentId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payment, err := api.service.Refund(c.Request.Context(), id)
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentModel(payment))
}

// DeletePayment removes a payment record.
func (api PaymentAPI) DeletePayment(c *gin.Context) {
	id, err := parseIDParam(c, "paymentId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPayments returns all payment records.
func (api PaymentAPI) ListPayments(c *gin.Context) {
	payments, err := api.service.List(c.Request.Context())
	if err != nil {
		respondPaymentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentModels(payments))
}

var problemPaymentDeclined = apierrors.ProblemDetail{
	Type:   "/problems/payment-declined",
	Title:  "Payment Declined",
	Status: http.StatusPaymentRequired,
}

func respondPaymentServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ports.ErrChargeDeclined):
		respondProblem(c, problemPaymentDeclined.WithDetail(err.Error()))
	case errors.Is(err, ports.ErrDuplicateBooking):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, app.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func toPaymentModel(payment *projection.Projection[*domain.Payment]) Payment {
	if payment == nil || payment.Entity == nil {
		return Payment{}
	}
	entity := payment.Entity
	return Payment{
		ID:             entity.ID,
		BookingID:      entity.BookingID,
		Amount:         entity.Amount,
		Status:         string(entity.Status),
		TransactionRef: entity.TransactionRef,
	}
}

func toPaymentModels(payments []*projection.Projection[*domain.Payment]) []Payment {
	models := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		models = append(models, toPaymentModel(payment))
	}
	return models
}
