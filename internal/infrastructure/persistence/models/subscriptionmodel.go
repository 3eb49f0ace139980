package models

import (
	"time"

	"melodia/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for
// subscriptions. EndDate is nullable: a null value means the grant never
// expires (free plan). Records are never deleted; lifecycle is tracked in
// Status and natural expiry is computed on read from EndDate.
type SubscriptionModel struct {
	ID                uint      `gorm:"primarykey"`
	SID               string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	UserID            uint      `gorm:"not null;index:idx_user_subscription"`
	PlanID            string    `gorm:"not null;size:50;index:idx_plan_subscription"`
	Status            string    `gorm:"not null;size:20;index:idx_status"`
	StartDate         time.Time `gorm:"not null"`
	EndDate           *time.Time `gorm:"index:idx_end_date"`
	Amount            int64     `gorm:"not null;default:0"`
	Currency          string    `gorm:"not null;size:10;default:INR"`
	RazorpayOrderID   string    `gorm:"size:100;index"`
	RazorpayPaymentID string    `gorm:"size:100"`
	RazorpaySignature string    `gorm:"size:200"`
	CancelledAt       *time.Time
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM.
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
