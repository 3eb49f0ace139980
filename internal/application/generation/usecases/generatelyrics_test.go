package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	entitlement "melodia/internal/application/entitlement/usecases"
	"melodia/internal/domain/generation"
	"melodia/internal/domain/subscription"
	vo "melodia/internal/domain/subscription/valueobjects"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
)

const testModel = "gpt-4o-mini"

func generationTestCatalog(t *testing.T) *subscription.Catalog {
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
	})
	require.NoError(t, err)
	return catalog
}

func generationTestUser(t *testing.T) *user.User {
	t.Helper()
	created := time.Now().UTC().Add(-72 * time.Hour)
	u, err := user.ReconstructUser(42, "user_abc123def456", "alice@example.com", "Alice",
		"$2a$10$hash", "", false, "free", created, created)
	require.NoError(t, err)
	return u
}

func activeMonthlySubscription(t *testing.T) *subscription.Subscription {
	t.Helper()
	start := time.Now().UTC().Add(-24 * time.Hour)
	end := start.Add(30 * 24 * time.Hour)
	sub, err := subscription.ReconstructSubscription(7, "sub_abc123def456", 42, "monthly",
		vo.StatusActive, start, &end, 49900, "INR",
		"order_test", "pay_test", "sig", nil, start, start)
	require.NoError(t, err)
	return sub
}

type lyricsFixture struct {
	uc       *GenerateLyricsUseCase
	userRepo *mockUserRepository
	subRepo  *mockSubscriptionRepository
	genRepo  *mockGenerationRepository
	llm      *mockLLMClient
}

func newLyricsFixture(t *testing.T) *lyricsFixture {
	t.Helper()
	f := &lyricsFixture{
		userRepo: new(mockUserRepository),
		subRepo:  new(mockSubscriptionRepository),
		genRepo:  new(mockGenerationRepository),
		llm:      new(mockLLMClient),
	}

	log := new(mockLogger)
	log.On("Infow", mock.Anything, mock.Anything).Return().Maybe()
	log.On("Warnw", mock.Anything, mock.Anything).Return().Maybe()
	log.On("Errorw", mock.Anything, mock.Anything).Return().Maybe()

	guard := entitlement.NewGuard(f.userRepo, f.subRepo, new(mockSongRepository),
		new(mockPracticeRepository), f.genRepo, generationTestCatalog(t), log)

	f.uc = NewGenerateLyricsUseCase(f.genRepo, f.userRepo, guard, f.llm, testModel, log)
	return f
}

func (f *lyricsFixture) expectFreeUser(t *testing.T, generationsThisMonth int64) *user.User {
	t.Helper()
	u := generationTestUser(t)
	f.userRepo.On("GetBySID", mock.Anything, u.SID()).Return(u, nil)
	f.subRepo.On("GetCurrentByUserID", mock.Anything, u.ID(), mock.Anything).Return(nil, nil)
	f.genRepo.On("CountByUserSince", mock.Anything, u.ID(), mock.Anything).
		Return(generationsThisMonth, nil)
	return u
}

func TestGenerateLyrics_ParsesKaraokeLines(t *testing.T) {
	f := newLyricsFixture(t)
	u := f.expectFreeUser(t, 1)

	lyrics := "[Verse 1]\nCity lights are calling\nDown the empty street\n\n[Chorus]\nWe keep on running"
	f.llm.On("Complete", mock.Anything, testModel, mock.Anything, mock.Anything).
		Return(lyrics, nil)
	f.genRepo.On("Create", mock.Anything, mock.AnythingOfType("*generation.Generation")).
		Return(nil)

	result, err := f.uc.Execute(context.Background(), GenerateLyricsCommand{
		UserSID: u.SID(),
		Theme:   "city nights",
		Mood:    "wistful",
	})

	require.NoError(t, err)
	require.Len(t, result.Lines, 3)
	assert.Equal(t, "City lights are calling", result.Lines[0].Text)
	assert.Equal(t, 0.0, result.Lines[0].StartTime)
	assert.Equal(t, 4.0, result.Lines[0].EndTime)
	assert.Equal(t, 8.0, result.Lines[2].StartTime)
	assert.Equal(t, 12.0, result.Lines[2].EndTime)
	assert.Equal(t, lyrics, result.Lyrics)

	require.NotNil(t, result.Remaining)
	assert.Equal(t, 2, *result.Remaining)

	require.NotNil(t, result.Generation)
	assert.Equal(t, generation.KindLyrics, result.Generation.Kind())
	assert.Equal(t, 3, result.Generation.Metadata()["line_count"])
	f.genRepo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*generation.Generation"))
}

func TestGenerateLyrics_UnlimitedPlanSkipsCounting(t *testing.T) {
	f := newLyricsFixture(t)
	u := generationTestUser(t)
	f.userRepo.On("GetBySID", mock.Anything, u.SID()).Return(u, nil)
	f.subRepo.On("GetCurrentByUserID", mock.Anything, u.ID(), mock.Anything).
		Return(activeMonthlySubscription(t), nil)
	f.llm.On("Complete", mock.Anything, testModel, mock.Anything, mock.Anything).
		Return("Only one line", nil)
	f.genRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.Execute(context.Background(), GenerateLyricsCommand{
		UserSID: u.SID(),
		Theme:   "open road",
	})

	require.NoError(t, err)
	assert.Nil(t, result.Remaining)
	f.genRepo.AssertNotCalled(t, "CountByUserSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateLyrics_QuotaReached(t *testing.T) {
	f := newLyricsFixture(t)
	u := f.expectFreeUser(t, 3)

	_, err := f.uc.Execute(context.Background(), GenerateLyricsCommand{
		UserSID: u.SID(),
		Theme:   "city nights",
	})

	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
	assert.Equal(t, "Monthly AI generation limit reached (3 generations)", appErr.Message)
	f.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateLyrics_MissingThemeRejected(t *testing.T) {
	f := newLyricsFixture(t)

	_, err := f.uc.Execute(context.Background(), GenerateLyricsCommand{
		UserSID: "user_abc123def456",
	})

	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	f.userRepo.AssertNotCalled(t, "GetBySID", mock.Anything, mock.Anything)
}

func TestGenerateLyrics_CompletionFailure(t *testing.T) {
	f := newLyricsFixture(t)
	u := f.expectFreeUser(t, 0)

	f.llm.On("Complete", mock.Anything, testModel, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("upstream timeout"))

	_, err := f.uc.Execute(context.Background(), GenerateLyricsCommand{
		UserSID: u.SID(),
		Theme:   "city nights",
	})

	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
	f.genRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestParseKaraokeLines(t *testing.T) {
	lines := parseKaraokeLines("[Intro]\n\n  First line  \n[Bridge]\nSecond line\n\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "First line", lines[0].Text)
	assert.Equal(t, "Second line", lines[1].Text)
	assert.Equal(t, 4.0, lines[1].StartTime)
	assert.Equal(t, 8.0, lines[1].EndTime)
}
