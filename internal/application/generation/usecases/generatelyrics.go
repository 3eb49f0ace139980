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

// secondsPerLine is the timing estimate used for karaoke playback when the
// lyrics carry no explicit timestamps.
const secondsPerLine = 4.0

const lyricsSystemPrompt = "You are a professional songwriter. Write singable, " +
	"original lyrics with a clear verse/chorus structure. Mark sections with " +
	"bracketed headers like [Verse 1] and [Chorus]. Output only the lyrics."

type GenerateLyricsCommand struct {
	UserSID  string `validate:"required"`
	Theme    string `validate:"required,max=200"`
	Language string `validate:"max=50"`
	Style    string `validate:"max=100"`
	Idea     string `validate:"max=2000"`
	Mood     string `validate:"max=100"`
}

// KaraokeLine is one display line with its estimated playback window.
type KaraokeLine struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

type GenerateLyricsResult struct {
	Generation *generation.Generation
	Lyrics     string
	Lines      []KaraokeLine
	Remaining  *int
}

// GenerateLyricsUseCase asks the language model for lyrics and parses them
// into timed karaoke lines. The guard admits the request under the monthly
// AI generation quota; every successful call records a usage event.
type GenerateLyricsUseCase struct {
	generationRepo generation.Repository
	userRepo       user.Repository
	guard          *entitlement.Guard
	llmClient      llm.Client
	model          string
	logger         logger.Interface
}

func NewGenerateLyricsUseCase(
	generationRepo generation.Repository,
	userRepo user.Repository,
	guard *entitlement.Guard,
	llmClient llm.Client,
	model string,
	logger logger.Interface,
) *GenerateLyricsUseCase {
	return &GenerateLyricsUseCase{
		generationRepo: generationRepo,
		userRepo:       userRepo,
		guard:          guard,
		llmClient:      llmClient,
		model:          model,
		logger:         logger,
	}
}

func (uc *GenerateLyricsUseCase) Execute(ctx context.Context, cmd GenerateLyricsCommand) (*GenerateLyricsResult, error) {
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
		return nil, errors.NewInternalError("failed to generate lyrics")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	prompt := buildLyricsPrompt(cmd)
	lyrics, err := uc.llmClient.Complete(ctx, uc.model, lyricsSystemPrompt, prompt)
	if err != nil {
		uc.logger.Errorw("lyrics completion failed", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to generate lyrics")
	}

	lines := parseKaraokeLines(lyrics)

	gen, err := generation.NewGeneration(targetUser.ID(), generation.KindLyrics, prompt, uc.model)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate lyrics")
	}
	gen.SetResult("", map[string]interface{}{
		"theme":      cmd.Theme,
		"language":   cmd.Language,
		"style":      cmd.Style,
		"mood":       cmd.Mood,
		"line_count": len(lines),
	})
	if err := uc.generationRepo.Create(ctx, gen); err != nil {
		uc.logger.Errorw("failed to record generation usage", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to generate lyrics")
	}

	uc.logger.Infow("lyrics generated",
		"generation_sid", gen.SID(), "user_sid", cmd.UserSID, "lines", len(lines))
	return &GenerateLyricsResult{
		Generation: gen,
		Lyrics:     lyrics,
		Lines:      lines,
		Remaining:  decision.Remaining,
	}, nil
}

func buildLyricsPrompt(cmd GenerateLyricsCommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write song lyrics about %q", cmd.Theme)
	if cmd.Language != "" {
		fmt.Fprintf(&b, " in %s", cmd.Language)
	}
	if cmd.Style != "" {
		fmt.Fprintf(&b, ", in the style of %s", cmd.Style)
	}
	if cmd.Mood != "" {
		fmt.Fprintf(&b, ", with a %s mood", cmd.Mood)
	}
	b.WriteString(".")
	if cmd.Idea != "" {
		fmt.Fprintf(&b, " Incorporate this idea: %s", cmd.Idea)
	}
	return b.String()
}

// parseKaraokeLines splits lyrics into display lines, dropping blanks and
// bracketed section headers, and assigns each line an estimated time window.
func parseKaraokeLines(lyrics string) []KaraokeLine {
	lines := make([]KaraokeLine, 0)
	for _, raw := range strings.Split(lyrics, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			continue
		}
		start := float64(len(lines)) * secondsPerLine
		lines = append(lines, KaraokeLine{
			Text:      text,
			StartTime: start,
			EndTime:   start + secondsPerLine,
		})
	}
	return lines
}
