// Package migration reconciles the database schema, choosing the strategy
// by environment: GORM auto-migration in development, versioned goose SQL
// scripts everywhere else.
package migration

import (
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"melodia/internal/infrastructure/persistence/models"
	"melodia/internal/shared/logger"
)

// Manager handles database migrations with different strategies.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager for the given environment.
func NewManager(environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case "production", "release", "test":
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGooseStrategy(scriptsPath)
	default:
		strategy = NewGormAutoMigrateStrategy()
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// NewManagerWithStrategy creates a migration manager with a fixed strategy.
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// AllModels lists every persistence model the schema carries.
func AllModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.SubscriptionModel{},
		&models.SongModel{},
		&models.ReviewModel{},
		&models.PracticeSessionModel{},
		&models.GenerationModel{},
		&models.PaymentModel{},
	}
}

// Migrate executes the configured migration strategy.
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, AllModels()...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(), "error", err)
		return err
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}
