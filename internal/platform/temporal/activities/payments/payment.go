package payments

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	paymentports "github.com/pawsit/pawsit-server/internal/domains/payments/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

const (
	// CapturePaymentActivityName charges the gateway for a pending payment.
	CapturePaymentActivityName = "payments.activities.CapturePayment"
	// ChargeDeclinedErrorType marks declines as non-retryable application errors.
	ChargeDeclinedErrorType = "ChargeDeclined"
)

// Activities groups activities that operate on the payments bounded context.
type Activities struct {
	service paymentports.Service
}

// NewActivities wires the payments service into the Temporal activities bundle.
func NewActivities(service paymentports.Service) *Activities {
	return &Activities{service: service}
}

// CapturePayment charges a pending payment and returns its projection.
func (a *Activities) CapturePayment(ctx context.Context, paymentID int64) (*projection.Projection[*domain.Payment], error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("payment capture activity not initialized", "paymentId", paymentID)
		return nil, errors.New("payment capture activity not initialized")
	}
	logger.Info("CapturePayment activity started", "paymentId", paymentID)
	result, err := a.service.Capture(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentports.ErrChargeDeclined) {
			logger.Error("CapturePayment declined", "paymentId", paymentID, "error", err)
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ChargeDeclinedErrorType, err)
		}
		logger.Error("CapturePayment activity failed", "paymentId", paymentID, "error", err)
		return nil, err
	}
	logger.Info("CapturePayment activity completed", "paymentId", paymentID)
	return result, nil
}
