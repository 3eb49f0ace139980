package models

import (
	"time"

	"melodia/internal/shared/constants"
)

// PaymentModel represents the database persistence model for payments.
type PaymentModel struct {
	ID                uint   `gorm:"primarykey"`
	SID               string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: pay_xxx"`
	UserID            uint   `gorm:"not null;index"`
	Amount            int64  `gorm:"not null"`
	Currency          string `gorm:"not null;size:10"`
	Status            string `gorm:"not null;size:20;index"`
	PaymentType       string `gorm:"not null;size:30"`
	PlanID            string `gorm:"not null;size:50"`
	RazorpayOrderID   string `gorm:"uniqueIndex;not null;size:100"`
	RazorpayPaymentID string `gorm:"size:100"`
	RazorpaySignature string `gorm:"size:200"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM.
func (PaymentModel) TableName() string {
	return constants.TablePayments
}
