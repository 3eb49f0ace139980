package models

import (
	"time"

	"melodia/internal/shared/constants"
)

// PracticeSessionModel represents the database persistence model for
// practice sessions. UserID plus CreatedAt back the daily minutes quota.
type PracticeSessionModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: prc_xxx"`
	UserID         uint   `gorm:"not null;index:idx_user_practiced,priority:1"`
	SessionType    string `gorm:"not null;size:20;index"`
	Duration       int    `gorm:"not null;comment:seconds"`
	PitchScore     float64
	RhythmScore    float64
	StabilityScore float64
	OverallScore   float64
	Notes          string    `gorm:"size:2000"`
	AudioURL       string    `gorm:"size:500"`
	CreatedAt      time.Time `gorm:"index:idx_user_practiced,priority:2"`
}

// TableName specifies the table name for GORM.
func (PracticeSessionModel) TableName() string {
	return constants.TablePracticeSessions
}
