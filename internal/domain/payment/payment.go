package payment

import (
	"fmt"
	"time"

	"melodia/internal/shared/id"
)

// PaymentStatus represents the state of a payment record.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
)

var validStatuses = map[PaymentStatus]bool{
	StatusPending:   true,
	StatusCompleted: true,
	StatusFailed:    true,
}

// TypeSubscription is the only payment type the studio takes today; song
// license purchases would add a second type here.
const TypeSubscription = "subscription"

// Payment tracks one gateway order through its lifecycle.
type Payment struct {
	paymentID         uint
	sid               string
	userID            uint
	amount            int64
	currency          string
	status            PaymentStatus
	paymentType       string
	planID            string
	razorpayOrderID   string
	razorpayPaymentID string
	razorpaySignature string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPayment creates a pending payment for a gateway order.
func NewPayment(userID uint, amount int64, currency, planID, razorpayOrderID string) (*Payment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if razorpayOrderID == "" {
		return nil, fmt.Errorf("gateway order ID is required")
	}

	now := time.Now().UTC()
	return &Payment{
		sid:             id.MustGenerateWithPrefix(id.PrefixPayment, id.DefaultLength),
		userID:          userID,
		amount:          amount,
		currency:        currency,
		status:          StatusPending,
		paymentType:     TypeSubscription,
		planID:          planID,
		razorpayOrderID: razorpayOrderID,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructPayment reconstructs a payment from persistence.
func ReconstructPayment(paymentID uint, sid string, userID uint, amount int64, currency string,
	status PaymentStatus, paymentType, planID, orderID, gatewayPaymentID, signature string,
	createdAt, updatedAt time.Time) (*Payment, error) {

	if paymentID == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid payment status: %s", status)
	}

	return &Payment{
		paymentID:         paymentID,
		sid:               sid,
		userID:            userID,
		amount:            amount,
		currency:          currency,
		status:            status,
		paymentType:       paymentType,
		planID:            planID,
		razorpayOrderID:   orderID,
		razorpayPaymentID: gatewayPaymentID,
		razorpaySignature: signature,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (p *Payment) ID() uint                  { return p.paymentID }
func (p *Payment) SID() string               { return p.sid }
func (p *Payment) UserID() uint              { return p.userID }
func (p *Payment) Amount() int64             { return p.amount }
func (p *Payment) Currency() string          { return p.currency }
func (p *Payment) Status() PaymentStatus     { return p.status }
func (p *Payment) Type() string              { return p.paymentType }
func (p *Payment) PlanID() string            { return p.planID }
func (p *Payment) RazorpayOrderID() string   { return p.razorpayOrderID }
func (p *Payment) RazorpayPaymentID() string { return p.razorpayPaymentID }
func (p *Payment) RazorpaySignature() string { return p.razorpaySignature }
func (p *Payment) CreatedAt() time.Time      { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time      { return p.updatedAt }

// SetID assigns the persistence ID after creation.
func (p *Payment) SetID(paymentID uint) error {
	if p.paymentID != 0 {
		return fmt.Errorf("payment ID already set")
	}
	if paymentID == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.paymentID = paymentID
	return nil
}

// Complete marks the payment verified, attaching the gateway references.
func (p *Payment) Complete(gatewayPaymentID, signature string) error {
	if p.status != StatusPending {
		return fmt.Errorf("cannot complete payment in status %s", p.status)
	}
	p.status = StatusCompleted
	p.razorpayPaymentID = gatewayPaymentID
	p.razorpaySignature = signature
	p.updatedAt = time.Now().UTC()
	return nil
}

// Fail marks the payment failed (bad signature or gateway rejection).
func (p *Payment) Fail() error {
	if p.status != StatusPending {
		return fmt.Errorf("cannot fail payment in status %s", p.status)
	}
	p.status = StatusFailed
	p.updatedAt = time.Now().UTC()
	return nil
}
