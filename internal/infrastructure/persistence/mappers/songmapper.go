package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"melodia/internal/domain/song"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/mapper"
)

type SongMapper interface {
	ToEntity(model *models.SongModel) (*song.Song, error)
	ToModel(entity *song.Song) (*models.SongModel, error)
	ToEntities(models []*models.SongModel) ([]*song.Song, error)
	ReviewToEntity(model *models.ReviewModel) (*song.Review, error)
	ReviewToModel(entity *song.Review) (*models.ReviewModel, error)
}

type SongMapperImpl struct{}

func NewSongMapper() SongMapper {
	return &SongMapperImpl{}
}

func (m *SongMapperImpl) ToEntity(model *models.SongModel) (*song.Song, error) {
	if model == nil {
		return nil, nil
	}

	var tags []string
	if model.Tags != nil {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal song tags: %w", err)
		}
	}

	entity, err := song.ReconstructSong(
		model.ID,
		model.SID,
		model.Title,
		model.Description,
		model.AudioURL,
		model.CoverImage,
		model.Duration,
		model.Genre,
		model.Mood,
		model.Language,
		model.Tempo,
		model.Key,
		model.Price,
		model.LicenseType,
		tags,
		model.AuthorID,
		model.IsPublic,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct song entity: %w", err)
	}

	return entity, nil
}

func (m *SongMapperImpl) ToModel(entity *song.Song) (*models.SongModel, error) {
	if entity == nil {
		return nil, nil
	}

	var tagsJSON datatypes.JSON
	if tags := entity.Tags(); len(tags) > 0 {
		data, err := json.Marshal(tags)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal song tags: %w", err)
		}
		tagsJSON = data
	}

	return &models.SongModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		Title:       entity.Title(),
		Description: entity.Description(),
		AudioURL:    entity.AudioURL(),
		CoverImage:  entity.CoverImage(),
		Duration:    entity.Duration(),
		Genre:       entity.Genre(),
		Mood:        entity.Mood(),
		Language:    entity.Language(),
		Tempo:       entity.Tempo(),
		Key:         entity.Key(),
		Price:       entity.Price(),
		LicenseType: entity.LicenseType(),
		Tags:        tagsJSON,
		AuthorID:    entity.AuthorID(),
		IsPublic:    entity.IsPublic(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *SongMapperImpl) ToEntities(songModels []*models.SongModel) ([]*song.Song, error) {
	return mapper.MapSlicePtrWithID(songModels, m.ToEntity,
		func(model *models.SongModel) uint { return model.ID })
}

func (m *SongMapperImpl) ReviewToEntity(model *models.ReviewModel) (*song.Review, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := song.ReconstructReview(
		model.ID,
		model.SongID,
		model.UserID,
		model.Rating,
		model.Comment,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct review entity: %w", err)
	}

	return entity, nil
}

func (m *SongMapperImpl) ReviewToModel(entity *song.Review) (*models.ReviewModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ReviewModel{
		ID:        entity.ID(),
		SongID:    entity.SongID(),
		UserID:    entity.UserID(),
		Rating:    entity.Rating(),
		Comment:   entity.Comment(),
		CreatedAt: entity.CreatedAt(),
	}, nil
}
