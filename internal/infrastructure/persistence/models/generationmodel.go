package models

import (
	"time"

	"gorm.io/datatypes"

	"melodia/internal/shared/constants"
)

// GenerationModel represents the database persistence model for
// AI-generation usage events. One row per generation call; the monthly AI
// quota counts rows by UserID within the current month, so the composite
// index mirrors that query.
type GenerationModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: gen_xxx"`
	UserID    uint   `gorm:"not null;index:idx_user_generated,priority:1"`
	Kind      string `gorm:"not null;size:20;index"`
	Prompt    string `gorm:"size:4000"`
	Model     string `gorm:"size:100"`
	ResultURL string `gorm:"size:500"`
	Metadata  datatypes.JSON
	CreatedAt time.Time `gorm:"index:idx_user_generated,priority:2"`
}

// TableName specifies the table name for GORM.
func (GenerationModel) TableName() string {
	return constants.TableGenerations
}
