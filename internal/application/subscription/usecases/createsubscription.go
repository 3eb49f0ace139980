package usecases

import (
	"context"

	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	"melodia/internal/infrastructure/cache"
	"melodia/internal/shared/biztime"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	UserSID string
	PlanID  string
}

type CreateSubscriptionResult struct {
	Subscription *subscription.Subscription
	Plan         subscription.Plan
}

// CreateSubscriptionUseCase creates a subscription grant for a plan from the
// catalog. Free plans activate immediately; paid plans sit pending until the
// gateway payment is verified.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	catalog          *subscription.Catalog
	planCache        cache.UserPlanCache
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	catalog *subscription.Catalog,
	planCache cache.UserPlanCache,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		catalog:          catalog,
		planCache:        planCache,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to create subscription")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	plan, ok := uc.catalog.Get(cmd.PlanID)
	if !ok {
		return nil, errors.NewNotFoundError("plan not found")
	}

	sub, err := subscription.NewSubscription(targetUser.ID(), plan, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist subscription", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to create subscription")
	}

	// Free grants are effective immediately, so the denormalized plan on
	// the user record and the cached resolution both change now. Paid
	// grants change nothing until payment verification.
	if plan.IsFree() {
		targetUser.AssignPlan(plan.ID)
		if err := uc.userRepo.Update(ctx, targetUser); err != nil {
			uc.logger.Errorw("failed to update user plan", "user_sid", cmd.UserSID, "error", err)
			return nil, errors.NewInternalError("failed to create subscription")
		}
		if err := uc.planCache.Invalidate(ctx, cmd.UserSID); err != nil {
			uc.logger.Warnw("failed to invalidate plan cache", "user_sid", cmd.UserSID, "error", err)
		}
	}

	uc.logger.Infow("subscription created",
		"subscription_sid", sub.SID(), "user_sid", cmd.UserSID, "plan_id", plan.ID, "status", sub.Status())
	return &CreateSubscriptionResult{Subscription: sub, Plan: plan}, nil
}
