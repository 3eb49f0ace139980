package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"melodia/internal/domain/payment"
	"melodia/internal/infrastructure/persistence/mappers"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/logger"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PaymentMapper
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) payment.Repository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mappers.NewPaymentMapper(),
		logger: logger,
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, paymentEntity *payment.Payment) error {
	model, err := r.mapper.ToModel(paymentEntity)
	if err != nil {
		r.logger.Errorw("failed to map payment entity to model", "error", err)
		return fmt.Errorf("failed to map payment entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment in database", "error", err)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if err := paymentEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set payment ID", "error", err)
		return fmt.Errorf("failed to set payment ID: %w", err)
	}

	r.logger.Infow("payment created successfully",
		"id", model.ID, "user_id", model.UserID, "order_id", model.RazorpayOrderID)
	return nil
}

func (r *PaymentRepositoryImpl) GetByID(ctx context.Context, paymentID uint) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := r.db.WithContext(ctx).First(&model, paymentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment by ID", "id", paymentID, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentRepositoryImpl) GetBySID(ctx context.Context, sid string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentRepositoryImpl) GetByOrderID(ctx context.Context, razorpayOrderID string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := r.db.WithContext(ctx).Where("razorpay_order_id = ?", razorpayOrderID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment by order ID", "order_id", razorpayOrderID, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, paymentEntity *payment.Payment) error {
	model, err := r.mapper.ToModel(paymentEntity)
	if err != nil {
		r.logger.Errorw("failed to map payment entity to model", "error", err)
		return fmt.Errorf("failed to map payment entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update payment in database", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update payment: %w", err)
	}

	return nil
}
