package usecases

import (
	"context"

	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	"melodia/internal/infrastructure/cache"
	"melodia/internal/shared/biztime"
	"melodia/internal/shared/constants"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	UserSID string
	// SubscriptionSID optionally names the grant to cancel. Empty means
	// the user's current subscription.
	SubscriptionSID string
}

// CancelSubscriptionUseCase cancels the user's current subscription and
// returns them to the free plan immediately.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	planCache        cache.UserPlanCache
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	planCache cache.UserPlanCache,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		planCache:        planCache,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) error {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return errors.NewInternalError("failed to cancel subscription")
	}
	if targetUser == nil {
		return errors.NewNotFoundError("user not found")
	}

	var sub *subscription.Subscription
	if cmd.SubscriptionSID != "" {
		sub, err = uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
		if err != nil {
			uc.logger.Errorw("failed to get subscription by SID", "subscription_sid", cmd.SubscriptionSID, "error", err)
			return errors.NewInternalError("failed to cancel subscription")
		}
		if sub != nil && sub.UserID() != targetUser.ID() {
			return errors.NewForbiddenError("subscription belongs to another user")
		}
	} else {
		sub, err = uc.subscriptionRepo.GetCurrentByUserID(ctx, targetUser.ID(), biztime.NowUTC())
		if err != nil {
			uc.logger.Errorw("failed to get current subscription", "user_sid", cmd.UserSID, "error", err)
			return errors.NewInternalError("failed to cancel subscription")
		}
	}
	if sub == nil {
		return errors.NewNotFoundError("no active subscription to cancel")
	}

	if err := sub.Cancel(); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist cancellation", "subscription_sid", sub.SID(), "error", err)
		return errors.NewInternalError("failed to cancel subscription")
	}

	targetUser.AssignPlan(constants.PlanFree)
	if err := uc.userRepo.Update(ctx, targetUser); err != nil {
		uc.logger.Errorw("failed to reset user plan", "user_sid", cmd.UserSID, "error", err)
		return errors.NewInternalError("failed to cancel subscription")
	}
	if err := uc.planCache.Invalidate(ctx, cmd.UserSID); err != nil {
		uc.logger.Warnw("failed to invalidate plan cache", "user_sid", cmd.UserSID, "error", err)
	}

	uc.logger.Infow("subscription cancelled", "subscription_sid", sub.SID(), "user_sid", cmd.UserSID)
	return nil
}
