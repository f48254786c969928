package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway is an in-memory payment processor fake. It approves every charge
// unless told to decline, and records refunds for assertions.
type Gateway struct {
	mu      sync.Mutex
	decline bool
	seq     int64
	charges []ports.ChargeRequest
	refunds map[string]float64
}

// NewGateway constructs an approving gateway fake.
func NewGateway() *Gateway {
	return &Gateway{refunds: map[string]float64{}}
}

// DeclineNext makes subsequent charges fail with ErrChargeDeclined.
func (g *Gateway) DeclineNext(decline bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.decline = decline
}

// Charge approves the request and returns a deterministic transaction ref.
func (g *Gateway) Charge(_ context.Context, req ports.ChargeRequest) (*ports.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.decline {
		return nil, ports.ErrChargeDeclined
	}
	g.seq++
	g.charges = append(g.charges, req)
	return &ports.ChargeResult{TransactionRef: fmt.Sprintf("txn-%d", g.seq)}, nil
}

// Refund records the refund.
func (g *Gateway) Refund(_ context.Context, transactionRef string, amount float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunds[transactionRef] = amount
	return nil
}

// Charges returns a copy of every approved charge.
func (g *Gateway) Charges() []ports.ChargeRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ports.ChargeRequest, len(g.charges))
	copy(out, g.charges)
	return out
}

// Refunded reports the refunded amount for a transaction ref.
func (g *Gateway) Refunded(transactionRef string) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	amount, ok := g.refunds[transactionRef]
	return amount, ok
}
