// Package models holds the GORM persistence models. These are the
// anti-corruption layer between the domain entities and the database.
package models

import (
	"time"

	"gorm.io/gorm"

	"melodia/internal/shared/constants"
)

// UserModel represents the database persistence model for users.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: user_xxx"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:100"`
	Avatar       string `gorm:"size:500"`
	IsPremium    bool   `gorm:"not null;default:false"`
	PlanID       string `gorm:"not null;size:50;default:free"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (UserModel) TableName() string {
	return constants.TableUsers
}
