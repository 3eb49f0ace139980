package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"melodia/internal/domain/generation"
	"melodia/internal/infrastructure/persistence/mappers"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/logger"
)

type GenerationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.GenerationMapper
	logger logger.Interface
}

func NewGenerationRepository(db *gorm.DB, logger logger.Interface) generation.Repository {
	return &GenerationRepositoryImpl{
		db:     db,
		mapper: mappers.NewGenerationMapper(),
		logger: logger,
	}
}

func (r *GenerationRepositoryImpl) Create(ctx context.Context, genEntity *generation.Generation) error {
	model, err := r.mapper.ToModel(genEntity)
	if err != nil {
		r.logger.Errorw("failed to map generation entity to model", "error", err)
		return fmt.Errorf("failed to map generation entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create generation in database", "error", err)
		return fmt.Errorf("failed to create generation: %w", err)
	}

	if err := genEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set generation ID", "error", err)
		return fmt.Errorf("failed to set generation ID: %w", err)
	}

	return nil
}

// CountByUserSince backs the monthly AI quota: one row per generation call,
// counted within the window across all kinds.
func (r *GenerationRepositoryImpl) CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.GenerationModel{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count generations", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}

	return count, nil
}

func (r *GenerationRepositoryImpl) ListByUserID(ctx context.Context, userID uint, kind string, limit int) ([]*generation.Generation, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" && kind != "all" {
		query = query.Where("kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var genModels []*models.GenerationModel
	if err := query.Order("created_at DESC").Find(&genModels).Error; err != nil {
		r.logger.Errorw("failed to list generations", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	return r.mapper.ToEntities(genModels)
}
