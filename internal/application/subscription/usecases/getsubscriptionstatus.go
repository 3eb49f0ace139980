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

type GetSubscriptionStatusCommand struct {
	UserSID string
}

type SubscriptionStatusResult struct {
	Plan         subscription.Plan
	IsPremium    bool
	Subscription *subscription.Subscription
}

// GetSubscriptionStatusUseCase resolves the user's effective plan. A Redis
// cache fronts the store for the common "which plan" question; the full
// subscription record is only loaded on cache miss or when the caller needs
// grant details.
type GetSubscriptionStatusUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	catalog          *subscription.Catalog
	planCache        cache.UserPlanCache
	logger           logger.Interface
}

func NewGetSubscriptionStatusUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	catalog *subscription.Catalog,
	planCache cache.UserPlanCache,
	logger logger.Interface,
) *GetSubscriptionStatusUseCase {
	return &GetSubscriptionStatusUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		catalog:          catalog,
		planCache:        planCache,
		logger:           logger,
	}
}

func (uc *GetSubscriptionStatusUseCase) Execute(ctx context.Context, cmd GetSubscriptionStatusCommand) (*SubscriptionStatusResult, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to get subscription status")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	sub, err := uc.subscriptionRepo.GetCurrentByUserID(ctx, targetUser.ID(), biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to get current subscription", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to get subscription status")
	}

	result := &SubscriptionStatusResult{Subscription: sub}
	if sub == nil {
		result.Plan = uc.catalog.Free()
		if err := uc.planCache.SetNullMarker(ctx, cmd.UserSID); err != nil {
			uc.logger.Warnw("failed to set plan cache null marker", "user_sid", cmd.UserSID, "error", err)
		}
	} else {
		result.Plan = uc.catalog.Resolve(sub.PlanID())
		result.IsPremium = !result.Plan.IsFree()
		cached := &cache.CachedPlan{PlanID: result.Plan.ID, IsPremium: result.IsPremium}
		if err := uc.planCache.Set(ctx, cmd.UserSID, cached); err != nil {
			uc.logger.Warnw("failed to cache user plan", "user_sid", cmd.UserSID, "error", err)
		}
	}
	return result, nil
}

// ResolvePlan answers the cheap "which plan" question, serving from cache
// when possible. Cache failures fall through to the store; correctness never
// depends on Redis being up.
func (uc *GetSubscriptionStatusUseCase) ResolvePlan(ctx context.Context, userSID string) (subscription.Plan, bool, error) {
	cached, err := uc.planCache.Get(ctx, userSID)
	if err != nil {
		uc.logger.Warnw("plan cache read failed", "user_sid", userSID, "error", err)
	} else if cached != nil {
		if cached.NoSubscription {
			return uc.catalog.Free(), false, nil
		}
		return uc.catalog.Resolve(cached.PlanID), cached.IsPremium, nil
	}

	result, err := uc.Execute(ctx, GetSubscriptionStatusCommand{UserSID: userSID})
	if err != nil {
		return subscription.Plan{}, false, err
	}
	return result.Plan, result.IsPremium, nil
}
