package usecases

import (
	"context"

	entitlement "melodia/internal/application/entitlement/usecases"
	"melodia/internal/domain/song"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type CreateSongCommand struct {
	UserSID     string
	Title       string
	Description string
	AudioURL    string
	CoverImage  string
	Duration    int
	Genre       string
	Mood        string
	Language    string
	Tempo       int
	Key         string
	Price       int64
	LicenseType string
	Tags        []string
	IsPublic    bool
}

// CreateSongUseCase creates a song after the entitlement guard admits the
// user under their monthly song quota.
type CreateSongUseCase struct {
	songRepo song.Repository
	userRepo user.Repository
	guard    *entitlement.Guard
	logger   logger.Interface
}

func NewCreateSongUseCase(
	songRepo song.Repository,
	userRepo user.Repository,
	guard *entitlement.Guard,
	logger logger.Interface,
) *CreateSongUseCase {
	return &CreateSongUseCase{
		songRepo: songRepo,
		userRepo: userRepo,
		guard:    guard,
		logger:   logger,
	}
}

func (uc *CreateSongUseCase) Execute(ctx context.Context, cmd CreateSongCommand) (*song.Song, error) {
	decision := uc.guard.CanCreateSong(ctx, cmd.UserSID)
	if !decision.Allowed {
		return nil, errors.NewForbiddenError(decision.Reason)
	}

	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to create song")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	s, err := song.NewSong(cmd.Title, cmd.AudioURL, cmd.Duration, targetUser.ID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	s.SetMetadata(cmd.Description, cmd.CoverImage, cmd.Genre, cmd.Mood, cmd.Language,
		cmd.Tempo, cmd.Key, cmd.Price, cmd.LicenseType, cmd.Tags)
	s.SetVisibility(cmd.IsPublic)

	if err := uc.songRepo.Create(ctx, s); err != nil {
		uc.logger.Errorw("failed to persist song", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to create song")
	}

	uc.logger.Infow("song created", "song_sid", s.SID(), "user_sid", cmd.UserSID, "title", s.Title())
	return s, nil
}
