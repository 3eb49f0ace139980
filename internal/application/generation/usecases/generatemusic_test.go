package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	entitlement "melodia/internal/application/entitlement/usecases"
	"melodia/internal/domain/generation"
	"melodia/internal/shared/errors"
)

type musicFixture struct {
	uc       *GenerateMusicUseCase
	userRepo *mockUserRepository
	subRepo  *mockSubscriptionRepository
	genRepo  *mockGenerationRepository
	llm      *mockLLMClient
}

func newMusicFixture(t *testing.T) *musicFixture {
	t.Helper()
	f := &musicFixture{
		userRepo: new(mockUserRepository),
		subRepo:  new(mockSubscriptionRepository),
		genRepo:  new(mockGenerationRepository),
		llm:      new(mockLLMClient),
	}

	log := new(mockLogger)
	log.On("Infow", mock.Anything, mock.Anything).Return().Maybe()
	log.On("Errorw", mock.Anything, mock.Anything).Return().Maybe()

	guard := entitlement.NewGuard(f.userRepo, f.subRepo, new(mockSongRepository),
		new(mockPracticeRepository), f.genRepo, generationTestCatalog(t), log)

	f.uc = NewGenerateMusicUseCase(f.genRepo, f.userRepo, guard, f.llm, testModel, log)
	return f
}

func TestGenerateMusic_BuildsPromptFromCommand(t *testing.T) {
	f := newMusicFixture(t)
	u := generationTestUser(t)
	f.userRepo.On("GetBySID", mock.Anything, u.SID()).Return(u, nil)
	f.subRepo.On("GetCurrentByUserID", mock.Anything, u.ID(), mock.Anything).Return(nil, nil)
	f.genRepo.On("CountByUserSince", mock.Anything, u.ID(), mock.Anything).Return(int64(0), nil)

	var capturedPrompt string
	f.llm.On("Complete", mock.Anything, testModel, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { capturedPrompt = args.String(3) }).
		Return(`{"sections":[{"bars":8}]}`, nil)
	f.genRepo.On("Create", mock.Anything, mock.AnythingOfType("*generation.Generation")).
		Return(nil)

	result, err := f.uc.Execute(context.Background(), GenerateMusicCommand{
		UserSID:  u.SID(),
		Genre:    "lo-fi",
		Mood:     "calm",
		Tempo:    84,
		Key:      "Am",
		Duration: 90,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"sections":[{"bars":8}]}`, result.Descriptor)
	assert.Contains(t, capturedPrompt, "90 second lo-fi track")
	assert.Contains(t, capturedPrompt, "calm mood")
	assert.Contains(t, capturedPrompt, "84 BPM")
	assert.Contains(t, capturedPrompt, "in Am")

	require.NotNil(t, result.Generation)
	assert.Equal(t, generation.KindMusic, result.Generation.Kind())
	assert.Equal(t, 84, result.Generation.Metadata()["tempo"])
}

func TestGenerateMusic_ZeroDurationRejected(t *testing.T) {
	f := newMusicFixture(t)

	_, err := f.uc.Execute(context.Background(), GenerateMusicCommand{
		UserSID: "user_abc123def456",
		Genre:   "lo-fi",
	})

	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "Duration")
	f.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
