package usecases

import (
	"context"

	"melodia/internal/domain/practice"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type GetStatsCommand struct {
	UserSID     string
	SessionType string
}

// GetStatsUseCase aggregates a user's practice history: session count, total
// time, and average scores.
type GetStatsUseCase struct {
	practiceRepo practice.Repository
	userRepo     user.Repository
	logger       logger.Interface
}

func NewGetStatsUseCase(
	practiceRepo practice.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetStatsUseCase {
	return &GetStatsUseCase{practiceRepo: practiceRepo, userRepo: userRepo, logger: logger}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context, cmd GetStatsCommand) (*practice.Stats, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to get practice stats")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	stats, err := uc.practiceRepo.StatsByUserID(ctx, targetUser.ID(), cmd.SessionType)
	if err != nil {
		uc.logger.Errorw("failed to aggregate practice stats", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to get practice stats")
	}
	return stats, nil
}
