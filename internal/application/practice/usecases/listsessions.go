package usecases

import (
	"context"

	"melodia/internal/domain/practice"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

const defaultSessionLimit = 50

type ListSessionsCommand struct {
	UserSID     string
	SessionType string
	Limit       int
}

// ListSessionsUseCase returns a user's practice history, newest first.
type ListSessionsUseCase struct {
	practiceRepo practice.Repository
	userRepo     user.Repository
	logger       logger.Interface
}

func NewListSessionsUseCase(
	practiceRepo practice.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListSessionsUseCase {
	return &ListSessionsUseCase{practiceRepo: practiceRepo, userRepo: userRepo, logger: logger}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, cmd ListSessionsCommand) ([]*practice.Session, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to list practice sessions")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	limit := cmd.Limit
	if limit < 1 {
		limit = defaultSessionLimit
	}
	sessions, err := uc.practiceRepo.ListByUserID(ctx, targetUser.ID(), cmd.SessionType, limit)
	if err != nil {
		uc.logger.Errorw("failed to list practice sessions", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to list practice sessions")
	}
	return sessions, nil
}
