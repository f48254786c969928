package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	paymentactivities "github.com/pawsit/pawsit-server/internal/platform/temporal/activities/payments"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// RunPaymentCaptureSequence executes the ordered set of activities needed to
// capture a payment against the gateway.
func RunPaymentCaptureSequence(ctx workflow.Context, paymentID int64) (*projection.Projection[*domain.Payment], error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("payment capture sequence started", "paymentId", paymentID)
	captureOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{paymentactivities.ChargeDeclinedErrorType},
		},
	}

	var result projection.Projection[*domain.Payment]
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, captureOptions),
		paymentactivities.CapturePaymentActivityName,
		paymentID,
	).Get(ctx, &result)
	if err != nil {
		logger.Error("payment capture sequence failed", "paymentId", paymentID, "error", err)
		return nil, err
	}
	logger.Info("payment capture sequence completed", "paymentId", paymentID)
	return &result, nil
}
