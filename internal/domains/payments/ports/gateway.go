package ports

import (
	"context"
	"errors"
)

// ErrChargeDeclined signals the gateway rejected the charge.
var ErrChargeDeclined = errors.New("charge declined by payment gateway")

// ChargeRequest carries the fields the gateway needs to capture a payment.
type ChargeRequest struct {
	PaymentID int64
	BookingID int64
	Amount    float64
}

// ChargeResult is the gateway's acknowledgement of a captured charge.
type ChargeResult struct {
	TransactionRef string
}

// Gateway is the outbound port to the external payment processor.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, transactionRef string, amount float64) error
}
