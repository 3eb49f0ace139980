package usecases

import (
	"context"

	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type ListSubscriptionsCommand struct {
	UserSID string
}

// ListSubscriptionsUseCase returns a user's subscription history, newest first.
type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, cmd ListSubscriptionsCommand) ([]*subscription.Subscription, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to list subscriptions")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	subs, err := uc.subscriptionRepo.ListByUserID(ctx, targetUser.ID())
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to list subscriptions")
	}
	return subs, nil
}
