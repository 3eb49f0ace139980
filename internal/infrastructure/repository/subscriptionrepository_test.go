package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"melodia/internal/domain/subscription"
	vo "melodia/internal/domain/subscription/valueobjects"
	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.SubscriptionModel{})
	require.NoError(t, err)

	return db
}

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedSubscription(t *testing.T, db *gorm.DB, model *models.SubscriptionModel) {
	require.NoError(t, db.Create(model).Error)
}

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, quietLogger())
	ctx := context.Background()

	freePlan := subscription.Plan{
		ID:       "free",
		Name:     "Free",
		Currency: "INR",
		Duration: subscription.DurationLifetime,
	}

	sub, err := subscription.NewSubscription(42, freePlan, time.Now().UTC())
	require.NoError(t, err)

	err = repo.Create(ctx, sub)
	require.NoError(t, err)
	assert.NotZero(t, sub.ID())

	found, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, sub.SID(), found.SID())
	assert.Equal(t, uint(42), found.UserID())
	assert.Equal(t, "free", found.PlanID())
	assert.Equal(t, vo.StatusActive, found.Status())
	assert.Nil(t, found.EndDate())
}

func TestSubscriptionRepository_GetBySID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, quietLogger())

	found, err := repo.GetBySID(context.Background(), "sub_doesnotexist")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSubscriptionRepository_GetCurrentByUserID(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	t.Run("perpetual active grant is current", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSubscriptionRepository(db, quietLogger())

		seedSubscription(t, db, &models.SubscriptionModel{
			SID:       "sub_perpetual001",
			UserID:    1,
			PlanID:    "free",
			Status:    string(vo.StatusActive),
			StartDate: past,
			Currency:  "INR",
		})

		current, err := repo.GetCurrentByUserID(context.Background(), 1, now)
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, "sub_perpetual001", current.SID())
	})

	t.Run("expired active row is skipped, not rewritten", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSubscriptionRepository(db, quietLogger())

		expiry := now.Add(-time.Minute)
		seedSubscription(t, db, &models.SubscriptionModel{
			SID:       "sub_expired00001",
			UserID:    2,
			PlanID:    "monthly",
			Status:    string(vo.StatusActive),
			StartDate: past,
			EndDate:   &expiry,
			Currency:  "INR",
		})

		current, err := repo.GetCurrentByUserID(context.Background(), 2, now)
		require.NoError(t, err)
		assert.Nil(t, current)

		// the row itself keeps its active status
		var model models.SubscriptionModel
		require.NoError(t, db.Where("sid = ?", "sub_expired00001").First(&model).Error)
		assert.Equal(t, string(vo.StatusActive), model.Status)
	})

	t.Run("cancelled grant is not current", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSubscriptionRepository(db, quietLogger())

		seedSubscription(t, db, &models.SubscriptionModel{
			SID:       "sub_cancelled001",
			UserID:    3,
			PlanID:    "monthly",
			Status:    string(vo.StatusCancelled),
			StartDate: past,
			EndDate:   &future,
			Currency:  "INR",
		})

		current, err := repo.GetCurrentByUserID(context.Background(), 3, now)
		require.NoError(t, err)
		assert.Nil(t, current)
	})

	t.Run("newest created wins when two grants are active", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSubscriptionRepository(db, quietLogger())

		seedSubscription(t, db, &models.SubscriptionModel{
			SID:       "sub_older0000001",
			UserID:    4,
			PlanID:    "monthly",
			Status:    string(vo.StatusActive),
			StartDate: past,
			EndDate:   &future,
			Currency:  "INR",
			CreatedAt: now.Add(-2 * time.Hour),
		})
		seedSubscription(t, db, &models.SubscriptionModel{
			SID:       "sub_newer0000001",
			UserID:    4,
			PlanID:    "yearly",
			Status:    string(vo.StatusActive),
			StartDate: past,
			EndDate:   &future,
			Currency:  "INR",
			CreatedAt: now.Add(-1 * time.Hour),
		})

		current, err := repo.GetCurrentByUserID(context.Background(), 4, now)
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, "sub_newer0000001", current.SID())
	})

	t.Run("no rows yields nil without error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSubscriptionRepository(db, quietLogger())

		current, err := repo.GetCurrentByUserID(context.Background(), 99, now)
		require.NoError(t, err)
		assert.Nil(t, current)
	})
}

func TestSubscriptionRepository_ListByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, quietLogger())
	now := time.Now().UTC()

	seedSubscription(t, db, &models.SubscriptionModel{
		SID: "sub_first0000001", UserID: 7, PlanID: "free",
		Status: string(vo.StatusActive), StartDate: now,
		Currency: "INR", CreatedAt: now.Add(-2 * time.Hour),
	})
	seedSubscription(t, db, &models.SubscriptionModel{
		SID: "sub_second000001", UserID: 7, PlanID: "monthly",
		Status: string(vo.StatusActive), StartDate: now,
		Currency: "INR", CreatedAt: now.Add(-1 * time.Hour),
	})
	seedSubscription(t, db, &models.SubscriptionModel{
		SID: "sub_otheruser001", UserID: 8, PlanID: "free",
		Status: string(vo.StatusActive), StartDate: now,
		Currency: "INR", CreatedAt: now,
	})

	subs, err := repo.ListByUserID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "sub_second000001", subs[0].SID())
	assert.Equal(t, "sub_first0000001", subs[1].SID())
}

func TestSubscriptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, quietLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	seedSubscription(t, db, &models.SubscriptionModel{
		SID: "sub_tocancel0001", UserID: 9, PlanID: "monthly",
		Status: string(vo.StatusActive), StartDate: now,
		Currency: "INR",
	})

	sub, err := repo.GetBySID(ctx, "sub_tocancel0001")
	require.NoError(t, err)
	require.NotNil(t, sub)

	require.NoError(t, sub.Cancel())
	require.NoError(t, repo.Update(ctx, sub))

	reloaded, err := repo.GetBySID(ctx, "sub_tocancel0001")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, reloaded.Status())
	assert.NotNil(t, reloaded.CancelledAt())
}
