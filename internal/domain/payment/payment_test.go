package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment_ValidInput(t *testing.T) {
	p, err := NewPayment(10, 499, "INR", "monthly", "order_abc")

	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status())
	assert.Equal(t, TypeSubscription, p.Type())
	assert.Equal(t, "monthly", p.PlanID())
	assert.NotEmpty(t, p.SID())
}

func TestNewPayment_ZeroAmount(t *testing.T) {
	_, err := NewPayment(10, 0, "INR", "monthly", "order_abc")
	require.Error(t, err)
}

func TestNewPayment_MissingOrderID(t *testing.T) {
	_, err := NewPayment(10, 499, "INR", "monthly", "")
	require.Error(t, err)
}

func TestPayment_Complete(t *testing.T) {
	p, err := NewPayment(10, 499, "INR", "monthly", "order_abc")
	require.NoError(t, err)

	require.NoError(t, p.Complete("payment_xyz", "sig"))

	assert.Equal(t, StatusCompleted, p.Status())
	assert.Equal(t, "payment_xyz", p.RazorpayPaymentID())
	assert.Error(t, p.Complete("payment_2", "sig2"), "completing twice should fail")
}

func TestPayment_FailAfterCompleteRejected(t *testing.T) {
	p, err := NewPayment(10, 499, "INR", "monthly", "order_abc")
	require.NoError(t, err)
	require.NoError(t, p.Complete("payment_xyz", "sig"))

	assert.Error(t, p.Fail())
}

func TestReconstructPayment_InvalidStatus(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructPayment(1, "pay_x", 10, 499, "INR",
		PaymentStatus("refunded"), TypeSubscription, "monthly", "order_1", "", "", now, now)

	require.Error(t, err)
}
