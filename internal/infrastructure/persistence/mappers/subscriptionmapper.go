package mappers

import (
	"fmt"

	"melodia/internal/domain/subscription"
	vo "melodia/internal/domain/subscription/valueobjects"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		model.PlanID,
		status,
		model.StartDate,
		model.EndDate,
		model.Amount,
		model.Currency,
		model.RazorpayOrderID,
		model.RazorpayPaymentID,
		model.RazorpaySignature,
		model.CancelledAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		UserID:            entity.UserID(),
		PlanID:            entity.PlanID(),
		Status:            string(entity.Status()),
		StartDate:         entity.StartDate(),
		EndDate:           entity.EndDate(),
		Amount:            entity.Amount(),
		Currency:          entity.Currency(),
		RazorpayOrderID:   entity.RazorpayOrderID(),
		RazorpayPaymentID: entity.RazorpayPaymentID(),
		RazorpaySignature: entity.RazorpaySignature(),
		CancelledAt:       entity.CancelledAt(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSlicePtrWithID(subModels, m.ToEntity,
		func(model *models.SubscriptionModel) uint { return model.ID })
}
