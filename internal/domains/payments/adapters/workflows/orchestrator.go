package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
	paymentworkflows "github.com/pawsit/pawsit-server/internal/platform/temporal/workflows/payments"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalPaymentWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlinePaymentWorkflows)(nil)
)

// TemporalPaymentWorkflows starts payment workflows on a Temporal cluster.
type TemporalPaymentWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalPaymentWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPaymentWorkflows(c client.Client) *TemporalPaymentWorkflows {
	return &TemporalPaymentWorkflows{client: c, taskQueue: paymentworkflows.PaymentCaptureTaskQueue}
}

// CapturePayment starts the Temporal workflow that charges a pending payment.
func (o *TemporalPaymentWorkflows) CapturePayment(ctx context.Context, paymentID int64) (*projection.Projection[*domain.Payment], error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal payment workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("payment-capture-%d-%s", paymentID, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		paymentworkflows.PaymentCaptureWorkflow,
		paymentworkflows.PaymentCaptureWorkflowInput{PaymentID: paymentID, TraceID: traceComponent},
	)
	if err != nil {
		// A duplicate start for the same payment attaches to the running capture
		// instead of charging twice.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result projection.Projection[*domain.Payment]
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, err
			}
			return &result, nil
		}
		return nil, err
	}
	var result projection.Projection[*domain.Payment]
	if err := run.Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InlinePaymentWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlinePaymentWorkflows struct {
	service ports.Service
}

// NewInlinePaymentWorkflows wraps the payments service for synchronous execution.
func NewInlinePaymentWorkflows(service ports.Service) *InlinePaymentWorkflows {
	return &InlinePaymentWorkflows{service: service}
}

// CapturePayment delegates to the application service without durable orchestration.
func (o *InlinePaymentWorkflows) CapturePayment(ctx context.Context, paymentID int64) (*projection.Projection[*domain.Payment], error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline payment workflows not configured")
	}
	return o.service.Capture(ctx, paymentID)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
