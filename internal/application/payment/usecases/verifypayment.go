package usecases

import (
	"context"

	"melodia/internal/domain/payment"
	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	"melodia/internal/infrastructure/cache"
	gateway "melodia/internal/infrastructure/payment"
	"melodia/internal/shared/biztime"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type VerifyPaymentCommand struct {
	UserSID           string
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
}

type VerifyPaymentResult struct {
	Payment      *payment.Payment
	Subscription *subscription.Subscription
	Plan         subscription.Plan
}

// VerifyPaymentUseCase checks the gateway signature for a completed checkout,
// marks the payment, and activates the paid subscription. A bad signature
// fails the payment record before returning; verification is the only path
// that upgrades a user to a paid plan.
type VerifyPaymentUseCase struct {
	paymentRepo      payment.Repository
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	catalog          *subscription.Catalog
	gateway          gateway.Gateway
	planCache        cache.UserPlanCache
	logger           logger.Interface
}

func NewVerifyPaymentUseCase(
	paymentRepo payment.Repository,
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	catalog *subscription.Catalog,
	gw gateway.Gateway,
	planCache cache.UserPlanCache,
	logger logger.Interface,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		catalog:          catalog,
		gateway:          gw,
		planCache:        planCache,
		logger:           logger,
	}
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd VerifyPaymentCommand) (*VerifyPaymentResult, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to verify payment")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	p, err := uc.paymentRepo.GetByOrderID(ctx, cmd.RazorpayOrderID)
	if err != nil {
		uc.logger.Errorw("failed to get payment by order ID", "order_id", cmd.RazorpayOrderID, "error", err)
		return nil, errors.NewInternalError("failed to verify payment")
	}
	if p == nil {
		return nil, errors.NewNotFoundError("payment not found")
	}
	if p.UserID() != targetUser.ID() {
		return nil, errors.NewForbiddenError("payment belongs to another user")
	}
	if p.Status() == payment.StatusCompleted {
		return nil, errors.NewConflictError("payment already verified")
	}

	if !uc.gateway.VerifySignature(cmd.RazorpayOrderID, cmd.RazorpayPaymentID, cmd.RazorpaySignature) {
		if failErr := p.Fail(); failErr == nil {
			if err := uc.paymentRepo.Update(ctx, p); err != nil {
				uc.logger.Errorw("failed to mark payment failed", "payment_sid", p.SID(), "error", err)
			}
		}
		uc.logger.Warnw("payment signature verification failed",
			"order_id", cmd.RazorpayOrderID, "user_sid", cmd.UserSID)
		return nil, errors.NewValidationError("invalid payment signature")
	}

	if err := p.Complete(cmd.RazorpayPaymentID, cmd.RazorpaySignature); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}
	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to persist payment completion", "payment_sid", p.SID(), "error", err)
		return nil, errors.NewInternalError("failed to verify payment")
	}

	plan := uc.catalog.Resolve(p.PlanID())
	sub, err := subscription.NewSubscription(targetUser.ID(), plan, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewInternalError("failed to verify payment")
	}
	if err := sub.Activate(cmd.RazorpayOrderID, cmd.RazorpayPaymentID, cmd.RazorpaySignature); err != nil {
		return nil, errors.NewInternalError("failed to verify payment")
	}
	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist subscription", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to verify payment")
	}

	targetUser.AssignPlan(plan.ID)
	if err := uc.userRepo.Update(ctx, targetUser); err != nil {
		uc.logger.Errorw("failed to update user plan", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to verify payment")
	}
	if err := uc.planCache.Invalidate(ctx, cmd.UserSID); err != nil {
		uc.logger.Warnw("failed to invalidate plan cache", "user_sid", cmd.UserSID, "error", err)
	}

	uc.logger.Infow("payment verified and subscription activated",
		"payment_sid", p.SID(), "subscription_sid", sub.SID(), "user_sid", cmd.UserSID, "plan_id", plan.ID)
	return &VerifyPaymentResult{Payment: p, Subscription: sub, Plan: plan}, nil
}
