package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	yearly := monthlyPlan()
	yearly.ID = "yearly"
	yearly.Duration = DurationYearly
	yearly.Price = 4999
	yearly.Limits.AudioQuality = "ultra"

	catalog, err := NewCatalog([]Plan{freePlan(), monthlyPlan(), yearly})
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog_RequiresFreePlan(t *testing.T) {
	_, err := NewCatalog([]Plan{monthlyPlan()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"free"`)
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Plan{freePlan(), freePlan()})
	require.Error(t, err)
}

func TestNewCatalog_RejectsInvalidDuration(t *testing.T) {
	bad := freePlan()
	bad.Duration = PlanDuration("weekly")

	_, err := NewCatalog([]Plan{bad})
	require.Error(t, err)
}

func TestCatalog_ResolveKnownPlan(t *testing.T) {
	catalog := testCatalog(t)

	p := catalog.Resolve("monthly")
	assert.Equal(t, "monthly", p.ID)
	assert.Equal(t, -1, p.Limits.SongsPerMonth)
}

func TestCatalog_ResolveUnknownFallsBackToFree(t *testing.T) {
	catalog := testCatalog(t)

	p := catalog.Resolve("enterprise")
	assert.Equal(t, "free", p.ID)
	assert.Equal(t, 5, p.Limits.SongsPerMonth)
}

func TestPlan_EndDateFrom(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	assert.Nil(t, freePlan().EndDateFrom(start), "lifetime plans never expire")

	monthlyEnd := monthlyPlan().EndDateFrom(start)
	require.NotNil(t, monthlyEnd)
	assert.Equal(t, time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC), *monthlyEnd)

	yearly := monthlyPlan()
	yearly.Duration = DurationYearly
	yearlyEnd := yearly.EndDateFrom(start)
	require.NotNil(t, yearlyEnd)
	assert.Equal(t, time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC), *yearlyEnd)
}

func TestPlan_ZeroLimitIsNotUnlimited(t *testing.T) {
	p := freePlan()
	p.Limits.SongsPerMonth = 0

	// 0 means no quota at all; only the -1 sentinel means unlimited.
	assert.NotEqual(t, -1, p.Limits.SongsPerMonth)
}
