package usecases

import (
	"context"

	"melodia/internal/domain/song"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type CreateReviewCommand struct {
	UserSID string
	SongSID string
	Rating  int
	Comment string
}

// CreateReviewUseCase records a marketplace review. One review per user per
// song; the unique index backs that rule and a duplicate surfaces as a
// conflict.
type CreateReviewUseCase struct {
	songRepo song.Repository
	userRepo user.Repository
	logger   logger.Interface
}

func NewCreateReviewUseCase(
	songRepo song.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *CreateReviewUseCase {
	return &CreateReviewUseCase{songRepo: songRepo, userRepo: userRepo, logger: logger}
}

func (uc *CreateReviewUseCase) Execute(ctx context.Context, cmd CreateReviewCommand) (*song.Review, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to create review")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	s, err := uc.songRepo.GetBySID(ctx, cmd.SongSID)
	if err != nil {
		uc.logger.Errorw("failed to get song by SID", "song_sid", cmd.SongSID, "error", err)
		return nil, errors.NewInternalError("failed to create review")
	}
	if s == nil {
		return nil, errors.NewNotFoundError("song not found")
	}

	review, err := song.NewReview(s.ID(), targetUser.ID(), cmd.Rating, cmd.Comment)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.songRepo.CreateReview(ctx, review); err != nil {
		uc.logger.Errorw("failed to persist review",
			"song_sid", cmd.SongSID, "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewConflictError("review already exists for this song")
	}

	uc.logger.Infow("review created", "song_sid", cmd.SongSID, "user_sid", cmd.UserSID, "rating", cmd.Rating)
	return review, nil
}
