package usecases

import (
	"context"

	"melodia/internal/domain/payment"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type GetPaymentCommand struct {
	UserSID    string
	PaymentSID string
}

// GetPaymentUseCase fetches one of the caller's payment records.
type GetPaymentUseCase struct {
	paymentRepo payment.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewGetPaymentUseCase(
	paymentRepo payment.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetPaymentUseCase {
	return &GetPaymentUseCase{paymentRepo: paymentRepo, userRepo: userRepo, logger: logger}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, cmd GetPaymentCommand) (*payment.Payment, error) {
	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to get payment")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	p, err := uc.paymentRepo.GetBySID(ctx, cmd.PaymentSID)
	if err != nil {
		uc.logger.Errorw("failed to get payment by SID", "payment_sid", cmd.PaymentSID, "error", err)
		return nil, errors.NewInternalError("failed to get payment")
	}
	if p == nil {
		return nil, errors.NewNotFoundError("payment not found")
	}
	if p.UserID() != targetUser.ID() {
		return nil, errors.NewForbiddenError("payment belongs to another user")
	}
	return p, nil
}
