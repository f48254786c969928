package ports

import (
	"context"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// WorkflowOrchestrator exposes durable workflow operations required by the
// payments bounded context.
type WorkflowOrchestrator interface {
	CapturePayment(ctx context.Context, paymentID int64) (*projection.Projection[*domain.Payment], error)
}
