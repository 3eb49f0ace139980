package usecases

import (
	"context"

	"melodia/internal/domain/generation"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

const defaultGenerationLimit = 50

type ListGenerationsCommand struct {
	UserSID string
	Kind    string
	Limit   int
}

// ListGenerationsUseCase returns a user's generation history, newest first.
type ListGenerationsUseCase struct {
	generationRepo generation.Repository
	userRepo       user.Repository
	logger         logger.Interface
}

func NewListGenerationsUseCase(
	generationRepo generation.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListGenerationsUseCase {
	return &ListGenerationsUseCase{generationRepo: generationRepo, userRepo: userRepo, logger: logger}
}

func (uc *ListGenerationsUseCase) Execute(ctx context.Context, cmd ListGenerationsCommand) ([]*generation.Generation, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to list generations")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	limit := cmd.Limit
	if limit < 1 {
		limit = defaultGenerationLimit
	}
	items, err := uc.generationRepo.ListByUserID(ctx, targetUser.ID(), cmd.Kind, limit)
	if err != nil {
		uc.logger.Errorw("failed to list generations", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to list generations")
	}
	return items, nil
}
