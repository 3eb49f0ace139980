package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"melodia/internal/domain/practice"
	"melodia/internal/infrastructure/persistence/mappers"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/logger"
)

type PracticeSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PracticeSessionMapper
	logger logger.Interface
}

func NewPracticeSessionRepository(db *gorm.DB, logger logger.Interface) practice.Repository {
	return &PracticeSessionRepositoryImpl{
		db:     db,
		mapper: mappers.NewPracticeSessionMapper(),
		logger: logger,
	}
}

func (r *PracticeSessionRepositoryImpl) Create(ctx context.Context, sessionEntity *practice.Session) error {
	model, err := r.mapper.ToModel(sessionEntity)
	if err != nil {
		r.logger.Errorw("failed to map practice session entity to model", "error", err)
		return fmt.Errorf("failed to map practice session entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create practice session in database", "error", err)
		return fmt.Errorf("failed to create practice session: %w", err)
	}

	if err := sessionEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set practice session ID", "error", err)
		return fmt.Errorf("failed to set practice session ID: %w", err)
	}

	return nil
}

func (r *PracticeSessionRepositoryImpl) ListByUserID(ctx context.Context, userID uint, sessionType string, limit int) ([]*practice.Session, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if sessionType != "" && sessionType != "all" {
		query = query.Where("session_type = ?", sessionType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var sessionModels []*models.PracticeSessionModel
	if err := query.Order("created_at DESC").Find(&sessionModels).Error; err != nil {
		r.logger.Errorw("failed to list practice sessions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list practice sessions: %w", err)
	}

	return r.mapper.ToEntities(sessionModels)
}

// SumDurationSince backs the daily practice quota. COALESCE keeps the sum
// at zero when the user has no sessions in the window.
func (r *PracticeSessionRepositoryImpl) SumDurationSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.PracticeSessionModel{}).
		Select("COALESCE(SUM(duration), 0)").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Scan(&total).Error; err != nil {
		r.logger.Errorw("failed to sum practice duration", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to sum practice duration: %w", err)
	}

	return total, nil
}

func (r *PracticeSessionRepositoryImpl) StatsByUserID(ctx context.Context, userID uint, sessionType string) (*practice.Stats, error) {
	query := r.db.WithContext(ctx).Model(&models.PracticeSessionModel{}).
		Where("user_id = ?", userID)
	if sessionType != "" && sessionType != "all" {
		query = query.Where("session_type = ?", sessionType)
	}

	var stats practice.Stats
	if err := query.
		Select(`COUNT(*) AS total_sessions,
			COALESCE(SUM(duration), 0) AS total_duration,
			COALESCE(AVG(pitch_score), 0) AS avg_pitch_score,
			COALESCE(AVG(rhythm_score), 0) AS avg_rhythm_score,
			COALESCE(AVG(stability_score), 0) AS avg_stability,
			COALESCE(AVG(overall_score), 0) AS avg_overall_score`).
		Scan(&stats).Error; err != nil {
		r.logger.Errorw("failed to aggregate practice stats", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to aggregate practice stats: %w", err)
	}

	return &stats, nil
}
