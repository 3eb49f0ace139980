package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"melodia/internal/domain/song"
	"melodia/internal/infrastructure/persistence/mappers"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/query"
)

// allowedSongSortByFields whitelists ORDER BY columns for marketplace
// listings to prevent SQL injection through the sort parameter.
var allowedSongSortByFields = map[string]bool{
	"created_at": true,
	"title":      true,
	"price":      true,
	"duration":   true,
}

type SongRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SongMapper
	logger logger.Interface
}

func NewSongRepository(db *gorm.DB, logger logger.Interface) song.Repository {
	return &SongRepositoryImpl{
		db:     db,
		mapper: mappers.NewSongMapper(),
		logger: logger,
	}
}

func (r *SongRepositoryImpl) Create(ctx context.Context, songEntity *song.Song) error {
	model, err := r.mapper.ToModel(songEntity)
	if err != nil {
		r.logger.Errorw("failed to map song entity to model", "error", err)
		return fmt.Errorf("failed to map song entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create song in database", "error", err)
		return fmt.Errorf("failed to create song: %w", err)
	}

	if err := songEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set song ID", "error", err)
		return fmt.Errorf("failed to set song ID: %w", err)
	}

	r.logger.Infow("song created successfully", "id", model.ID, "author_id", model.AuthorID)
	return nil
}

func (r *SongRepositoryImpl) GetByID(ctx context.Context, songID uint) (*song.Song, error) {
	var model models.SongModel

	if err := r.db.WithContext(ctx).First(&model, songID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get song by ID", "id", songID, "error", err)
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SongRepositoryImpl) GetBySID(ctx context.Context, sid string) (*song.Song, error) {
	var model models.SongModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get song by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SongRepositoryImpl) ListPublic(ctx context.Context, filter song.Filter) ([]*song.Song, int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.SongModel{}).Where("is_public = ?", true)

	if filter.Genre != "" && filter.Genre != "All" {
		tx = tx.Where("genre = ?", filter.Genre)
	}
	if filter.Mood != "" && filter.Mood != "All" {
		tx = tx.Where("mood = ?", filter.Mood)
	}
	if filter.LicenseType != "" && filter.LicenseType != "All" {
		tx = tx.Where("license_type = ?", filter.LicenseType)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count public songs", "error", err)
		return nil, 0, fmt.Errorf("failed to count songs: %w", err)
	}

	sortBy := filter.SortBy
	if !allowedSongSortByFields[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := "ASC"
	if filter.SortDesc || filter.SortBy == "" {
		sortOrder = "DESC"
	}
	sort := query.SortFilter{SortBy: sortBy, SortOrder: sortOrder}
	page := query.PageFilter{Page: filter.Page, PageSize: filter.PageSize}

	var songModels []*models.SongModel
	if err := tx.
		Order(sort.OrderClause()).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&songModels).Error; err != nil {
		r.logger.Errorw("failed to list public songs", "error", err)
		return nil, 0, fmt.Errorf("failed to list songs: %w", err)
	}

	entities, err := r.mapper.ToEntities(songModels)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// CountByAuthorSince backs the monthly song quota: consumption is derived
// by counting rows in the window, never from a running counter.
func (r *SongRepositoryImpl) CountByAuthorSince(ctx context.Context, authorID uint, since time.Time) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.SongModel{}).
		Where("author_id = ? AND created_at >= ?", authorID, since).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count songs by author", "author_id", authorID, "error", err)
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}

	return count, nil
}

func (r *SongRepositoryImpl) RatingSummaries(ctx context.Context, songIDs []uint) (map[uint]song.RatingSummary, error) {
	summaries := make(map[uint]song.RatingSummary, len(songIDs))
	if len(songIDs) == 0 {
		return summaries, nil
	}

	var rows []song.RatingSummary
	if err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Select("song_id, AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Where("song_id IN ?", songIDs).
		Group("song_id").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to aggregate song ratings", "error", err)
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	for _, row := range rows {
		summaries[row.SongID] = row
	}
	return summaries, nil
}

func (r *SongRepositoryImpl) CreateReview(ctx context.Context, reviewEntity *song.Review) error {
	model, err := r.mapper.ReviewToModel(reviewEntity)
	if err != nil {
		r.logger.Errorw("failed to map review entity to model", "error", err)
		return fmt.Errorf("failed to map review entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create review in database", "song_id", model.SongID, "error", err)
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}
