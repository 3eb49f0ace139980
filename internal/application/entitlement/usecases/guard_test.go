package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"melodia/internal/domain/subscription"
	vo "melodia/internal/domain/subscription/valueobjects"
	"melodia/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func testCatalog(t *testing.T) *subscription.Catalog {
	t.Helper()
	catalog, err := subscription.NewCatalog([]subscription.Plan{
		{
			ID:       "free",
			Name:     "Free",
			Duration: subscription.DurationLifetime,
			Currency: "INR",
			Limits: subscription.PlanLimits{
				SongsPerMonth:         5,
				PracticeMinutesPerDay: 15,
				AudioQuality:          "standard",
				AIGenerationsPerMonth: 3,
			},
		},
		{
			ID:       "monthly",
			Name:     "Monthly Pro",
			Price:    49900,
			Currency: "INR",
			Duration: subscription.DurationMonthly,
			Limits: subscription.PlanLimits{
				SongsPerMonth:         subscription.UnlimitedQuota,
				PracticeMinutesPerDay: subscription.UnlimitedQuota,
				AudioQuality:          "hd",
				AIGenerationsPerMonth: subscription.UnlimitedQuota,
			},
		},
		{
			ID:       "restricted",
			Name:     "Restricted",
			Duration: subscription.DurationMonthly,
			Currency: "INR",
			Limits: subscription.PlanLimits{
				SongsPerMonth:         0,
				PracticeMinutesPerDay: 0,
				AudioQuality:          "standard",
				AIGenerationsPerMonth: 0,
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(42, "user_abc123def456", "alice@example.com", "Alice",
		"$2a$10$hash", "", false, "free", testNow.Add(-72*time.Hour), testNow.Add(-72*time.Hour))
	require.NoError(t, err)
	return u
}

func testActiveSubscription(t *testing.T, planID string, endDate *time.Time) *subscription.Subscription {
	t.Helper()
	start := testNow.Add(-24 * time.Hour)
	sub, err := subscription.ReconstructSubscription(7, "sub_abc123def456", 42, planID,
		vo.StatusActive, start, endDate, 49900, "INR",
		"order_test", "pay_test", "sig", nil, start, start)
	require.NoError(t, err)
	return sub
}

type guardFixture struct {
	guard          *Guard
	userRepo       *mockUserRepository
	subRepo        *mockSubscriptionRepository
	songRepo       *mockSongRepository
	practiceRepo   *mockPracticeRepository
	generationRepo *mockGenerationRepository
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	f := &guardFixture{
		userRepo:       new(mockUserRepository),
		subRepo:        new(mockSubscriptionRepository),
		songRepo:       new(mockSongRepository),
		practiceRepo:   new(mockPracticeRepository),
		generationRepo: new(mockGenerationRepository),
	}
	log := new(mockLogger)
	log.On("Errorw", mock.Anything, mock.Anything).Return().Maybe()
	f.guard = NewGuard(f.userRepo, f.subRepo, f.songRepo, f.practiceRepo,
		f.generationRepo, testCatalog(t), log)
	f.guard.now = func() time.Time { return testNow }
	return f
}

func (f *guardFixture) expectUser(u *user.User) {
	if u == nil {
		f.userRepo.On("GetBySID", mock.Anything, mock.Anything).Return(nil, nil)
		return
	}
	f.userRepo.On("GetBySID", mock.Anything, u.SID()).Return(u, nil)
}

func (f *guardFixture) expectCurrentSubscription(sub *subscription.Subscription) {
	if sub == nil {
		f.subRepo.On("GetCurrentByUserID", mock.Anything, mock.Anything, testNow).Return(nil, nil)
		return
	}
	f.subRepo.On("GetCurrentByUserID", mock.Anything, sub.UserID(), testNow).Return(sub, nil)
}

func TestGuard_CanCreateSong_UnlimitedPlanSkipsCounting(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(testActiveSubscription(t, "monthly", nil))

	d := f.guard.CanCreateSong(context.Background(), u.SID())

	assert.True(t, d.Allowed)
	assert.Nil(t, d.Remaining)
	assert.Empty(t, d.Reason)
	f.songRepo.AssertNotCalled(t, "CountByAuthorSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuard_CanCreateSong_FreePlanUnderLimit(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	f.songRepo.On("CountByAuthorSince", mock.Anything, u.ID(), monthStart).Return(int64(3), nil)

	d := f.guard.CanCreateSong(context.Background(), u.SID())

	assert.True(t, d.Allowed)
	require.NotNil(t, d.Remaining)
	assert.Equal(t, 2, *d.Remaining)
	assert.Empty(t, d.Reason)
}

func TestGuard_CanCreateSong_FreePlanAtLimit(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	f.songRepo.On("CountByAuthorSince", mock.Anything, u.ID(), mock.Anything).Return(int64(5), nil)

	d := f.guard.CanCreateSong(context.Background(), u.SID())

	assert.False(t, d.Allowed)
	require.NotNil(t, d.Remaining)
	assert.Equal(t, 0, *d.Remaining)
	assert.Equal(t, "Monthly song limit reached (5 songs)", d.Reason)
}

func TestGuard_CanCreateSong_CountOverLimitClampsToZero(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	f.songRepo.On("CountByAuthorSince", mock.Anything, u.ID(), mock.Anything).Return(int64(9), nil)

	d := f.guard.CanCreateSong(context.Background(), u.SID())

	assert.False(t, d.Allowed)
	require.NotNil(t, d.Remaining)
	assert.Equal(t, 0, *d.Remaining)
}

func TestGuard_CanCreateSong_ZeroLimitIsNotUnlimited(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(testActiveSubscription(t, "restricted", nil))

	d := f.guard.CanCreateSong(context.Background(), u.SID())

	assert.False(t, d.Allowed)
	require.NotNil(t, d.Remaining)
	assert.Equal(t, 0, *d.Remaining)
	assert.Equal(t, "Monthly song limit reached (0 songs)", d.Reason)
	f.songRepo.AssertNotCalled(t, "CountByAuthorSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuard_CanCreateSong_UnknownUserDenied(t *testing.T) {
	f := newGuardFixture(t)
	f.expectUser(nil)

	d := f.guard.CanCreateSong(context.Background(), "user_nobody")

	assert.False(t, d.Allowed)
	assert.Nil(t, d.Remaining)
	assert.Equal(t, "User not found", d.Reason)
}

func TestGuard_CanCreateSong_UserLookupFailureDenied(t *testing.T) {
	f := newGuardFixture(t)
	f.userRepo.On("GetBySID", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	d := f.guard.CanCreateSong(context.Background(), "user_abc123def456")

	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonCheckFailed, d.Reason)
}

func TestGuard_CanCreateSong_CountFailureDenied(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	f.songRepo.On("CountByAuthorSince", mock.Anything, u.ID(), mock.Anything).
		Return(int64(0), errors.New("query timeout"))

	d := f.guard.CanCreateSong(context.Background(), u.SID())

	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonCheckFailed, d.Reason)
}

func TestGuard_CanCreateSong_UnknownPlanIDFallsBackToFree(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(testActiveSubscription(t, "legacy-gold", nil))
	f.songRepo.On("CountByAuthorSince", mock.Anything, u.ID(), mock.Anything).Return(int64(0), nil)

	d := f.guard.CanCreateSong(context.Background(), u.SID())

	assert.True(t, d.Allowed)
	require.NotNil(t, d.Remaining)
	assert.Equal(t, 5, *d.Remaining)
}

func TestGuard_CanUseAIGeneration_FreePlanUnderLimit(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	f.generationRepo.On("CountByUserSince", mock.Anything, u.ID(), monthStart).Return(int64(1), nil)

	d := f.guard.CanUseAIGeneration(context.Background(), u.SID())

	assert.True(t, d.Allowed)
	require.NotNil(t, d.Remaining)
	assert.Equal(t, 2, *d.Remaining)
}

func TestGuard_CanUseAIGeneration_FreePlanAtLimit(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	f.generationRepo.On("CountByUserSince", mock.Anything, u.ID(), mock.Anything).Return(int64(3), nil)

	d := f.guard.CanUseAIGeneration(context.Background(), u.SID())

	assert.False(t, d.Allowed)
	assert.Equal(t, "Monthly AI generation limit reached (3 generations)", d.Reason)
}

func TestGuard_CanUseAIGeneration_UnlimitedPlan(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(testActiveSubscription(t, "monthly", nil))

	d := f.guard.CanUseAIGeneration(context.Background(), u.SID())

	assert.True(t, d.Allowed)
	assert.Nil(t, d.Remaining)
	f.generationRepo.AssertNotCalled(t, "CountByUserSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuard_CanPracticeMore_FloorsSecondsToMinutes(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	dayStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	// 14 minutes 50 seconds floors to 14 minutes consumed.
	f.practiceRepo.On("SumDurationSince", mock.Anything, u.ID(), dayStart).Return(int64(890), nil)

	d := f.guard.CanPracticeMore(context.Background(), u.SID())

	assert.True(t, d.Allowed)
	require.NotNil(t, d.RemainingMinutes)
	assert.Equal(t, 1, *d.RemainingMinutes)
}

func TestGuard_CanPracticeMore_AtDailyLimit(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)
	f.practiceRepo.On("SumDurationSince", mock.Anything, u.ID(), mock.Anything).Return(int64(900), nil)

	d := f.guard.CanPracticeMore(context.Background(), u.SID())

	assert.False(t, d.Allowed)
	require.NotNil(t, d.RemainingMinutes)
	assert.Equal(t, 0, *d.RemainingMinutes)
	assert.Equal(t, "Daily practice limit reached (15 minutes)", d.Reason)
}

func TestGuard_CanPracticeMore_UnlimitedPlan(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(testActiveSubscription(t, "monthly", nil))

	d := f.guard.CanPracticeMore(context.Background(), u.SID())

	assert.True(t, d.Allowed)
	assert.Nil(t, d.RemainingMinutes)
	f.practiceRepo.AssertNotCalled(t, "SumDurationSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuard_CanPracticeMore_UnknownUserDenied(t *testing.T) {
	f := newGuardFixture(t)
	f.expectUser(nil)

	d := f.guard.CanPracticeMore(context.Background(), "user_nobody")

	assert.False(t, d.Allowed)
	assert.Nil(t, d.RemainingMinutes)
	assert.Equal(t, "User not found", d.Reason)
}

func TestGuard_CanAccessPremium_ActivePaidSubscription(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	end := testNow.Add(20 * 24 * time.Hour)
	f.expectUser(u)
	f.expectCurrentSubscription(testActiveSubscription(t, "monthly", &end))

	assert.True(t, f.guard.CanAccessPremium(context.Background(), u.SID()))
}

func TestGuard_CanAccessPremium_NoSubscription(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)

	assert.False(t, f.guard.CanAccessPremium(context.Background(), u.SID()))
}

func TestGuard_CanAccessPremium_LookupFailure(t *testing.T) {
	f := newGuardFixture(t)
	f.userRepo.On("GetBySID", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	assert.False(t, f.guard.CanAccessPremium(context.Background(), "user_abc123def456"))
}

func TestGuard_GetUserPlan_PaidSubscription(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	end := testNow.Add(20 * 24 * time.Hour)
	sub := testActiveSubscription(t, "monthly", &end)
	f.expectUser(u)
	f.expectCurrentSubscription(sub)

	info := f.guard.GetUserPlan(context.Background(), u.SID())

	assert.Equal(t, "monthly", info.Plan.ID)
	assert.True(t, info.IsPremium)
	require.NotNil(t, info.Subscription)
	assert.Equal(t, sub.SID(), info.Subscription.SID())
}

func TestGuard_GetUserPlan_NoSubscriptionIsFree(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.expectCurrentSubscription(nil)

	info := f.guard.GetUserPlan(context.Background(), u.SID())

	assert.Equal(t, "free", info.Plan.ID)
	assert.False(t, info.IsPremium)
	assert.Nil(t, info.Subscription)
}

func TestGuard_GetUserPlan_UnknownUserIsFree(t *testing.T) {
	f := newGuardFixture(t)
	f.expectUser(nil)

	info := f.guard.GetUserPlan(context.Background(), "user_nobody")

	assert.Equal(t, "free", info.Plan.ID)
	assert.False(t, info.IsPremium)
	assert.Nil(t, info.Subscription)
}

func TestGuard_GetUserPlan_SubscriptionLookupFailureIsFree(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)
	f.subRepo.On("GetCurrentByUserID", mock.Anything, u.ID(), testNow).
		Return(nil, errors.New("timeout"))

	info := f.guard.GetUserPlan(context.Background(), u.SID())

	assert.Equal(t, "free", info.Plan.ID)
	assert.False(t, info.IsPremium)
}

func TestGuard_WindowBoundariesAreUTC(t *testing.T) {
	f := newGuardFixture(t)
	u := testUser(t)
	f.expectUser(u)

	// Late on March 31 UTC the month window still starts March 1, and the
	// day window starts at that day's midnight UTC.
	f.guard.now = func() time.Time {
		return time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	}
	f.subRepo.On("GetCurrentByUserID", mock.Anything, u.ID(), mock.Anything).Return(nil, nil)

	f.songRepo.On("CountByAuthorSince", mock.Anything, u.ID(),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)).Return(int64(0), nil)
	f.practiceRepo.On("SumDurationSince", mock.Anything, u.ID(),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)).Return(int64(0), nil)

	assert.True(t, f.guard.CanCreateSong(context.Background(), u.SID()).Allowed)
	assert.True(t, f.guard.CanPracticeMore(context.Background(), u.SID()).Allowed)
	f.songRepo.AssertExpectations(t)
	f.practiceRepo.AssertExpectations(t)
}
