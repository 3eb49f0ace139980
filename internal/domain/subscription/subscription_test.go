package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "melodia/internal/domain/subscription/valueobjects"
)

// --- helpers ---

func freePlan() Plan {
	return Plan{
		ID:       "free",
		Name:     "Free Plan",
		Price:    0,
		Currency: "INR",
		Duration: DurationLifetime,
		Limits: PlanLimits{
			SongsPerMonth:         5,
			PracticeMinutesPerDay: 15,
			AudioQuality:          "standard",
			AIGenerationsPerMonth: 3,
		},
	}
}

func monthlyPlan() Plan {
	return Plan{
		ID:       "monthly",
		Name:     "Premium Monthly",
		Price:    499,
		Currency: "INR",
		Duration: DurationMonthly,
		Limits: PlanLimits{
			SongsPerMonth:         -1,
			PracticeMinutesPerDay: -1,
			AudioQuality:          "hd",
			AIGenerationsPerMonth: -1,
		},
	}
}

func reconstructActive(t *testing.T, planID string, startDate time.Time, endDate *time.Time, createdAt time.Time) *Subscription {
	t.Helper()
	sub, err := ReconstructSubscription(1, "sub_test123", 10, planID,
		vo.StatusActive, startDate, endDate, 0, "INR", "", "", "", nil, createdAt, createdAt)
	require.NoError(t, err)
	return sub
}

// =====================================================================
// TestNewSubscription_*
// =====================================================================

func TestNewSubscription_FreePlanActivatesImmediately(t *testing.T) {
	start := time.Now().UTC()

	sub, err := NewSubscription(10, freePlan(), start)

	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Nil(t, sub.EndDate(), "free plan grants are perpetual")
	assert.True(t, sub.IsPerpetual())
	assert.NotEmpty(t, sub.SID())
}

func TestNewSubscription_PaidPlanStartsPending(t *testing.T) {
	start := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

	sub, err := NewSubscription(10, monthlyPlan(), start)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending, sub.Status())
	require.NotNil(t, sub.EndDate())
	assert.Equal(t, start.AddDate(0, 1, 0), *sub.EndDate())
	assert.Equal(t, int64(499), sub.Amount())
	assert.Equal(t, "INR", sub.Currency())
}

func TestNewSubscription_YearlyEndDate(t *testing.T) {
	start := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	yearly := monthlyPlan()
	yearly.ID = "yearly"
	yearly.Duration = DurationYearly
	yearly.Price = 4999

	sub, err := NewSubscription(10, yearly, start)

	require.NoError(t, err)
	require.NotNil(t, sub.EndDate())
	assert.Equal(t, start.AddDate(1, 0, 0), *sub.EndDate())
}

func TestNewSubscription_ZeroUserID(t *testing.T) {
	_, err := NewSubscription(0, freePlan(), time.Now().UTC())
	require.Error(t, err)
}

// =====================================================================
// Lifecycle transitions
// =====================================================================

func TestSubscription_ActivateFromPending(t *testing.T) {
	sub, err := NewSubscription(10, monthlyPlan(), time.Now().UTC())
	require.NoError(t, err)

	err = sub.Activate("order_1", "payment_1", "sig_1")

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, "order_1", sub.RazorpayOrderID())
	assert.Equal(t, "payment_1", sub.RazorpayPaymentID())
}

func TestSubscription_ActivateTwiceFails(t *testing.T) {
	sub, err := NewSubscription(10, monthlyPlan(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, sub.Activate("order_1", "payment_1", "sig_1"))

	assert.Error(t, sub.Activate("order_2", "payment_2", "sig_2"))
}

func TestSubscription_Cancel(t *testing.T) {
	sub, err := NewSubscription(10, freePlan(), time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, sub.Cancel())

	assert.Equal(t, vo.StatusCancelled, sub.Status())
	require.NotNil(t, sub.CancelledAt())
	assert.Error(t, sub.Cancel(), "cancelling twice should fail")
}

// =====================================================================
// Effective-activity policy: expiry is computed on read
// =====================================================================

func TestIsEffectivelyActive_PerpetualGrant(t *testing.T) {
	now := time.Now().UTC()
	sub := reconstructActive(t, "free", now.AddDate(-1, 0, 0), nil, now.AddDate(-1, 0, 0))

	assert.True(t, sub.IsEffectivelyActive(now))
}

func TestIsEffectivelyActive_UnexpiredPaidGrant(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sub := reconstructActive(t, "monthly", now.AddDate(0, -1, 0), &end, now.AddDate(0, -1, 0))

	assert.True(t, sub.IsEffectivelyActive(now))
}

func TestIsEffectivelyActive_ExpiredRecordStillMarkedActive(t *testing.T) {
	// The status column is never rewritten on natural expiry; the record
	// still says "active" but must not grant the plan.
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sub := reconstructActive(t, "monthly", now.AddDate(0, -2, 0), &end, now.AddDate(0, -2, 0))

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.False(t, sub.IsEffectivelyActive(now))
}

func TestIsEffectivelyActive_EndDateExactlyNow(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := now
	sub := reconstructActive(t, "monthly", now.AddDate(0, -1, 0), &end, now.AddDate(0, -1, 0))

	assert.True(t, sub.IsEffectivelyActive(now), "endDate >= now still grants")
}

func TestIsEffectivelyActive_CancelledRecord(t *testing.T) {
	now := time.Now().UTC()
	sub, err := ReconstructSubscription(1, "sub_test123", 10, "monthly",
		vo.StatusCancelled, now.AddDate(0, -1, 0), nil, 499, "INR", "", "", "", &now, now, now)
	require.NoError(t, err)

	assert.False(t, sub.IsEffectivelyActive(now))
}

// =====================================================================
// Reconstruction guards
// =====================================================================

func TestReconstructSubscription_InvalidStatus(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructSubscription(1, "sub_x", 10, "free",
		vo.SubscriptionStatus("paused"), now, nil, 0, "INR", "", "", "", nil, now, now)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid subscription status")
}

func TestReconstructSubscription_ZeroID(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructSubscription(0, "sub_x", 10, "free",
		vo.StatusActive, now, nil, 0, "INR", "", "", "", nil, now, now)

	require.Error(t, err)
}
