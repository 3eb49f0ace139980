package usecases

import (
	"context"

	entitlement "melodia/internal/application/entitlement/usecases"
	"melodia/internal/infrastructure/renderer"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/id"
	"melodia/internal/shared/logger"
)

// Known video compositions in the render project.
var validCompositions = map[string]bool{
	"music-video": true,
	"lyric-video": true,
	"promo":       true,
	"visualizer":  true,
}

// Qualities above standard require a paid plan.
var premiumQualities = map[string]bool{
	"hd":    true,
	"ultra": true,
}

type RenderVideoCommand struct {
	UserSID     string
	Composition string
	Title       string
	AudioURL    string
	Lines       interface{}
	ThemeName   string
	Quality     string
}

type RenderVideoResult struct {
	JobSID   string
	VideoURL string
}

// RenderVideoUseCase drives the external video renderer. HD and ultra
// quality are premium features; standard quality is open to every plan.
type RenderVideoUseCase struct {
	renderer renderer.Renderer
	guard    *entitlement.Guard
	logger   logger.Interface
}

func NewRenderVideoUseCase(
	r renderer.Renderer,
	guard *entitlement.Guard,
	logger logger.Interface,
) *RenderVideoUseCase {
	return &RenderVideoUseCase{renderer: r, guard: guard, logger: logger}
}

func (uc *RenderVideoUseCase) Execute(ctx context.Context, cmd RenderVideoCommand) (*RenderVideoResult, error) {
	if !validCompositions[cmd.Composition] {
		return nil, errors.NewValidationError("unknown composition")
	}
	if premiumQualities[cmd.Quality] && !uc.guard.CanAccessPremium(ctx, cmd.UserSID) {
		return nil, errors.NewForbiddenError("premium subscription required for HD rendering")
	}

	jobSID := id.MustGenerateWithPrefix(id.PrefixRenderJob, id.DefaultLength)
	props := renderer.RenderProps{
		Title:     cmd.Title,
		AudioURL:  cmd.AudioURL,
		Lines:     cmd.Lines,
		ThemeName: cmd.ThemeName,
	}

	videoURL, err := uc.renderer.Render(ctx, jobSID, cmd.Composition, props)
	if err != nil {
		uc.logger.Errorw("video render failed",
			"job_sid", jobSID, "composition", cmd.Composition, "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to render video")
	}

	uc.logger.Infow("video rendered", "job_sid", jobSID, "composition", cmd.Composition, "url", videoURL)
	return &RenderVideoResult{JobSID: jobSID, VideoURL: videoURL}, nil
}
