package usecases

import (
	"context"
	"fmt"
	"strings"

	entitlement "melodia/internal/application/entitlement/usecases"
	"melodia/internal/domain/generation"
	"melodia/internal/domain/user"
	"melodia/internal/infrastructure/llm"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/utils"
)

const musicSystemPrompt = "You are a music production model. Given a track " +
	"brief, respond with a concise production descriptor: arrangement, " +
	"instrumentation, and structure notes a producer can execute."

type GenerateMusicCommand struct {
	UserSID       string `validate:"required"`
	Genre         string `validate:"required,max=100"`
	Mood          string `validate:"max=100"`
	Tempo         int    `validate:"gte=0,lte=300"`
	Key           string `validate:"max=10"`
	Duration      int    `validate:"required,gt=0,lte=600"`
	Instrument    string `validate:"max=100"`
	TimeSignature string `validate:"max=10"`
	Scale         string `validate:"max=50"`
	Complexity    string `validate:"max=50"`
	Layers        []string
}

type GenerateMusicResult struct {
	Generation *generation.Generation
	Descriptor string
	Remaining  *int
}

// GenerateMusicUseCase asks the hosted music model for a track descriptor.
// Guard-gated under the same monthly AI quota as lyrics; each call records
// a usage event.
type GenerateMusicUseCase struct {
	generationRepo generation.Repository
	userRepo       user.Repository
	guard          *entitlement.Guard
	llmClient      llm.Client
	model          string
	logger         logger.Interface
}

func NewGenerateMusicUseCase(
	generationRepo generation.Repository,
	userRepo user.Repository,
	guard *entitlement.Guard,
	llmClient llm.Client,
	model string,
	logger logger.Interface,
) *GenerateMusicUseCase {
	return &GenerateMusicUseCase{
		generationRepo: generationRepo,
		userRepo:       userRepo,
		guard:          guard,
		llmClient:      llmClient,
		model:          model,
		logger:         logger,
	}
}

func (uc *GenerateMusicUseCase) Execute(ctx context.Context, cmd GenerateMusicCommand) (*GenerateMusicResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	decision := uc.guard.CanUseAIGeneration(ctx, cmd.UserSID)
	if !decision.Allowed {
		return nil, errors.NewForbiddenError(decision.Reason)
	}

	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to generate music")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	prompt := buildMusicPrompt(cmd)
	descriptor, err := uc.llmClient.Complete(ctx, uc.model, musicSystemPrompt, prompt)
	if err != nil {
		uc.logger.Errorw("music completion failed", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to generate music")
	}

	gen, err := generation.NewGeneration(targetUser.ID(), generation.KindMusic, prompt, uc.model)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate music")
	}
	gen.SetResult("", map[string]interface{}{
		"genre":    cmd.Genre,
		"mood":     cmd.Mood,
		"tempo":    cmd.Tempo,
		"key":      cmd.Key,
		"duration": cmd.Duration,
	})
	if err := uc.generationRepo.Create(ctx, gen); err != nil {
		uc.logger.Errorw("failed to record generation usage", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to generate music")
	}

	uc.logger.Infow("music descriptor generated", "generation_sid", gen.SID(), "user_sid", cmd.UserSID)
	return &GenerateMusicResult{Generation: gen, Descriptor: descriptor, Remaining: decision.Remaining}, nil
}

func buildMusicPrompt(cmd GenerateMusicCommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compose a %d second %s track", cmd.Duration, cmd.Genre)
	if cmd.Mood != "" {
		fmt.Fprintf(&b, " with a %s mood", cmd.Mood)
	}
	if cmd.Tempo > 0 {
		fmt.Fprintf(&b, " at %d BPM", cmd.Tempo)
	}
	if cmd.Key != "" {
		fmt.Fprintf(&b, " in %s", cmd.Key)
	}
	if cmd.Instrument != "" {
		fmt.Fprintf(&b, ", lead instrument %s", cmd.Instrument)
	}
	b.WriteString(".")
	if cmd.TimeSignature != "" {
		fmt.Fprintf(&b, " Time signature %s.", cmd.TimeSignature)
	}
	if cmd.Scale != "" {
		fmt.Fprintf(&b, " Scale: %s.", cmd.Scale)
	}
	if cmd.Complexity != "" {
		fmt.Fprintf(&b, " Arrangement complexity: %s.", cmd.Complexity)
	}
	if len(cmd.Layers) > 0 {
		fmt.Fprintf(&b, " Layers: %s.", strings.Join(cmd.Layers, ", "))
	}
	return b.String()
}
