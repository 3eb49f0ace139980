package mappers

import (
	"fmt"

	"melodia/internal/domain/practice"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/mapper"
)

type PracticeSessionMapper interface {
	ToEntity(model *models.PracticeSessionModel) (*practice.Session, error)
	ToModel(entity *practice.Session) (*models.PracticeSessionModel, error)
	ToEntities(models []*models.PracticeSessionModel) ([]*practice.Session, error)
}

type PracticeSessionMapperImpl struct{}

func NewPracticeSessionMapper() PracticeSessionMapper {
	return &PracticeSessionMapperImpl{}
}

func (m *PracticeSessionMapperImpl) ToEntity(model *models.PracticeSessionModel) (*practice.Session, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := practice.ReconstructSession(
		model.ID,
		model.SID,
		model.UserID,
		model.SessionType,
		model.Duration,
		model.PitchScore,
		model.RhythmScore,
		model.StabilityScore,
		model.OverallScore,
		model.Notes,
		model.AudioURL,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct practice session entity: %w", err)
	}

	return entity, nil
}

func (m *PracticeSessionMapperImpl) ToModel(entity *practice.Session) (*models.PracticeSessionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PracticeSessionModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		UserID:         entity.UserID(),
		SessionType:    entity.SessionType(),
		Duration:       entity.Duration(),
		PitchScore:     entity.PitchScore(),
		RhythmScore:    entity.RhythmScore(),
		StabilityScore: entity.StabilityScore(),
		OverallScore:   entity.OverallScore(),
		Notes:          entity.Notes(),
		AudioURL:       entity.AudioURL(),
		CreatedAt:      entity.CreatedAt(),
	}, nil
}

func (m *PracticeSessionMapperImpl) ToEntities(sessionModels []*models.PracticeSessionModel) ([]*practice.Session, error) {
	return mapper.MapSlicePtrWithID(sessionModels, m.ToEntity,
		func(model *models.PracticeSessionModel) uint { return model.ID })
}
