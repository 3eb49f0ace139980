package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"melodia/internal/domain/generation"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/mapper"
)

type GenerationMapper interface {
	ToEntity(model *models.GenerationModel) (*generation.Generation, error)
	ToModel(entity *generation.Generation) (*models.GenerationModel, error)
	ToEntities(models []*models.GenerationModel) ([]*generation.Generation, error)
}

type GenerationMapperImpl struct{}

func NewGenerationMapper() GenerationMapper {
	return &GenerationMapperImpl{}
}

func (m *GenerationMapperImpl) ToEntity(model *models.GenerationModel) (*generation.Generation, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal generation metadata: %w", err)
		}
	}

	entity, err := generation.ReconstructGeneration(
		model.ID,
		model.SID,
		model.UserID,
		model.Kind,
		model.Prompt,
		model.Model,
		model.ResultURL,
		metadata,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct generation entity: %w", err)
	}

	return entity, nil
}

func (m *GenerationMapperImpl) ToModel(entity *generation.Generation) (*models.GenerationModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadataJSON datatypes.JSON
	if metadata := entity.Metadata(); len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal generation metadata: %w", err)
		}
		metadataJSON = data
	}

	return &models.GenerationModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		UserID:    entity.UserID(),
		Kind:      entity.Kind(),
		Prompt:    entity.Prompt(),
		Model:     entity.Model(),
		ResultURL: entity.ResultURL(),
		Metadata:  metadataJSON,
		CreatedAt: entity.CreatedAt(),
	}, nil
}

func (m *GenerationMapperImpl) ToEntities(genModels []*models.GenerationModel) ([]*generation.Generation, error) {
	return mapper.MapSlicePtrWithID(genModels, m.ToEntity,
		func(model *models.GenerationModel) uint { return model.ID })
}
