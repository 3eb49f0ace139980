package usecases

import (
	"context"

	"melodia/internal/domain/payment"
	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	gateway "melodia/internal/infrastructure/payment"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type CreateOrderCommand struct {
	UserSID string
	PlanID  string
}

type CreateOrderResult struct {
	Payment  *payment.Payment
	Order    *gateway.Order
	Plan     subscription.Plan
	KeyID    string
	UserName string
	Email    string
}

// CreateOrderUseCase opens a Razorpay order for a paid plan and records the
// pending payment. Free plans never go through the gateway.
type CreateOrderUseCase struct {
	paymentRepo payment.Repository
	userRepo    user.Repository
	catalog     *subscription.Catalog
	gateway     gateway.Gateway
	keyID       string
	logger      logger.Interface
}

func NewCreateOrderUseCase(
	paymentRepo payment.Repository,
	userRepo user.Repository,
	catalog *subscription.Catalog,
	gw gateway.Gateway,
	keyID string,
	logger logger.Interface,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		catalog:     catalog,
		gateway:     gw,
		keyID:       keyID,
		logger:      logger,
	}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to create order")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	plan, ok := uc.catalog.Get(cmd.PlanID)
	if !ok {
		return nil, errors.NewNotFoundError("plan not found")
	}
	if plan.IsFree() {
		return nil, errors.NewValidationError("free plan does not require payment")
	}

	order, err := uc.gateway.CreateOrder(ctx, plan.Price, plan.Currency, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to create gateway order",
			"user_sid", cmd.UserSID, "plan_id", plan.ID, "error", err)
		return nil, errors.NewInternalError("failed to create order")
	}

	p, err := payment.NewPayment(targetUser.ID(), plan.Price, plan.Currency, plan.ID, order.ID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.paymentRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to persist payment", "order_id", order.ID, "error", err)
		return nil, errors.NewInternalError("failed to create order")
	}

	uc.logger.Infow("payment order created",
		"payment_sid", p.SID(), "order_id", order.ID, "user_sid", cmd.UserSID, "plan_id", plan.ID, "amount", plan.Price)
	return &CreateOrderResult{
		Payment:  p,
		Order:    order,
		Plan:     plan,
		KeyID:    uc.keyID,
		UserName: targetUser.Name(),
		Email:    targetUser.Email(),
	}, nil
}
