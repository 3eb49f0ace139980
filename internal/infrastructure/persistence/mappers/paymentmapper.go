package mappers

import (
	"fmt"

	"melodia/internal/domain/payment"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/mapper"
)

type PaymentMapper interface {
	ToEntity(model *models.PaymentModel) (*payment.Payment, error)
	ToModel(entity *payment.Payment) (*models.PaymentModel, error)
	ToEntities(models []*models.PaymentModel) ([]*payment.Payment, error)
}

type PaymentMapperImpl struct{}

func NewPaymentMapper() PaymentMapper {
	return &PaymentMapperImpl{}
}

func (m *PaymentMapperImpl) ToEntity(model *models.PaymentModel) (*payment.Payment, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := payment.ReconstructPayment(
		model.ID,
		model.SID,
		model.UserID,
		model.Amount,
		model.Currency,
		payment.PaymentStatus(model.Status),
		model.PaymentType,
		model.PlanID,
		model.RazorpayOrderID,
		model.RazorpayPaymentID,
		model.RazorpaySignature,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct payment entity: %w", err)
	}

	return entity, nil
}

func (m *PaymentMapperImpl) ToModel(entity *payment.Payment) (*models.PaymentModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PaymentModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		UserID:            entity.UserID(),
		Amount:            entity.Amount(),
		Currency:          entity.Currency(),
		Status:            string(entity.Status()),
		PaymentType:       entity.Type(),
		PlanID:            entity.PlanID(),
		RazorpayOrderID:   entity.RazorpayOrderID(),
		RazorpayPaymentID: entity.RazorpayPaymentID(),
		RazorpaySignature: entity.RazorpaySignature(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *PaymentMapperImpl) ToEntities(paymentModels []*models.PaymentModel) ([]*payment.Payment, error) {
	return mapper.MapSlicePtrWithID(paymentModels, m.ToEntity,
		func(model *models.PaymentModel) uint { return model.ID })
}
