package payments

import (
	"go.temporal.io/sdk/workflow"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/platform/temporal/sequences"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

const (
	// PaymentCaptureWorkflowName is the public identifier for registering the workflow.
	PaymentCaptureWorkflowName = "payments.workflows.Capture"
	// PaymentCaptureTaskQueue is the queue consumed by the worker processing payment workflows.
	PaymentCaptureTaskQueue = "PAYMENT_CAPTURE"
)

// PaymentCaptureWorkflowInput captures the payload required to charge a payment.
type PaymentCaptureWorkflowInput struct {
	PaymentID int64
	TraceID   string
}

// PaymentCaptureWorkflow orchestrates the activities needed to capture a payment.
func PaymentCaptureWorkflow(ctx workflow.Context, input PaymentCaptureWorkflowInput) (*projection.Projection[*domain.Payment], error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("PaymentCaptureWorkflow started", withTraceID(input.TraceID, "paymentId", input.PaymentID)...)
	result, err := sequences.RunPaymentCaptureSequence(ctx, input.PaymentID)
	if err != nil {
		logger.Error("PaymentCaptureWorkflow failed", withTraceID(input.TraceID, "paymentId", input.PaymentID, "error", err)...)
		return nil, err
	}
	logger.Info("PaymentCaptureWorkflow completed", withTraceID(input.TraceID, "paymentId", input.PaymentID)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
