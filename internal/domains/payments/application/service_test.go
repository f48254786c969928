package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notifmemory "github.com/pawsit/pawsit-server/internal/domains/notifications/adapters/memory"
	notifapp "github.com/pawsit/pawsit-server/internal/domains/notifications/application"
	notifdomain "github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	paymentmemory "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/memory"
	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
)

type stubBookingDirectory struct {
	known map[int64]bool
}

func (d stubBookingDirectory) BookingExists(_ context.Context, bookingID int64) (bool, error) {
	return d.known[bookingID], nil
}

func newPaymentService(gateway ports.Gateway) *Service {
	return NewService(paymentmemory.NewRepository(), gateway,
		WithBookingDirectory(stubBookingDirectory{known: map[int64]bool{55: true, 56: true}}),
	)
}

func pendingPayment(t *testing.T, svc *Service, bookingID int64) int64 {
	t.Helper()
	payment, err := domain.NewPayment(0, bookingID, 120)
	require.NoError(t, err)
	saved, err := svc.Create(context.Background(), payment)
	require.NoError(t, err)
	return saved.Entity.ID
}

func TestCreate_StartsPending(t *testing.T) {
	svc := newPaymentService(paymentmemory.NewGateway())

	payment, err := domain.NewPayment(0, 55, 120)
	require.NoError(t, err)
	payment.Status = domain.StatusPaid
	saved, err := svc.Create(context.Background(), payment)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, saved.Entity.Status)
	assert.Empty(t, saved.Entity.TransactionRef)
}

func TestCreate_UnknownBooking(t *testing.T) {
	svc := newPaymentService(paymentmemory.NewGateway())

	payment, err := domain.NewPayment(0, 404, 120)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), payment)

	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ports.ErrBookingMissing)
}

func TestCreate_SecondPaymentForBookingConflicts(t *testing.T) {
	svc := newPaymentService(paymentmemory.NewGateway())
	pendingPayment(t, svc, 55)

	payment, err := domain.NewPayment(0, 55, 60)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), payment)
	require.ErrorIs(t, err, ports.ErrDuplicateBooking)
}

func TestCapture_MarksPaidWithTransactionRef(t *testing.T) {
	gateway := paymentmemory.NewGateway()
	svc := newPaymentService(gateway)
	id := pendingPayment(t, svc, 55)

	captured, err := svc.Capture(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPaid, captured.Entity.Status)
	assert.NotEmpty(t, captured.Entity.TransactionRef)
	require.Len(t, gateway.Charges(), 1)
	assert.Equal(t, 120.0, gateway.Charges()[0].Amount)
}

func TestCapture_DeclineMarksFailed(t *testing.T) {
	gateway := paymentmemory.NewGateway()
	gateway.DeclineNext(true)
	svc := newPaymentService(gateway)
	id := pendingPayment(t, svc, 55)

	_, err := svc.Capture(context.Background(), id)
	require.ErrorIs(t, err, ports.ErrChargeDeclined)

	stored, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.Entity.Status)
}

func TestCapture_OnlyPendingIsChargeable(t *testing.T) {
	svc := newPaymentService(paymentmemory.NewGateway())
	id := pendingPayment(t, svc, 55)
	_, err := svc.Capture(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.Capture(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotPending)
}

func TestRefund_ReturnsCapturedCharge(t *testing.T) {
	gateway := paymentmemory.NewGateway()
	svc := newPaymentService(gateway)
	id := pendingPayment(t, svc, 55)
	captured, err := svc.Capture(context.Background(), id)
	require.NoError(t, err)

	refunded, err := svc.Refund(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRefunded, refunded.Entity.Status)
	amount, ok := gateway.Refunded(captured.Entity.TransactionRef)
	require.True(t, ok)
	assert.Equal(t, 120.0, amount)
}

func TestRefund_RequiresPaidStatus(t *testing.T) {
	svc := newPaymentService(paymentmemory.NewGateway())
	id := pendingPayment(t, svc, 55)

	_, err := svc.Refund(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotPaid)
}

func TestCaptureAndRefund_NotifyPayee(t *testing.T) {
	notifier := notifapp.NewService(notifmemory.NewRepository(), notifmemory.NewDispatcher())
	gateway := paymentmemory.NewGateway()
	svc := NewService(paymentmemory.NewRepository(), gateway,
		WithBookingDirectory(stubBookingDirectory{known: map[int64]bool{55: true}}),
		WithNotifier(notifier, func(_ context.Context, bookingID int64) (int64, error) {
			return 20, nil
		}),
	)
	id := pendingPayment(t, svc, 55)

	_, err := svc.Capture(context.Background(), id)
	require.NoError(t, err)
	_, err = svc.Refund(context.Background(), id)
	require.NoError(t, err)

	inbox, err := notifier.FindByUser(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	kinds := []notifdomain.Type{inbox[0].Entity.Type, inbox[1].Entity.Type}
	assert.Contains(t, kinds, notifdomain.TypePaymentReceived)
	assert.Contains(t, kinds, notifdomain.TypePaymentRefunded)
}

func TestGetByBooking_FindsPayment(t *testing.T) {
	svc := newPaymentService(paymentmemory.NewGateway())
	id := pendingPayment(t, svc, 56)

	stored, err := svc.GetByBooking(context.Background(), 56)
	require.NoError(t, err)
	assert.Equal(t, id, stored.Entity.ID)

	_, err = svc.GetByBooking(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
