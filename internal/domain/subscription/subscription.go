package subscription

import (
	"fmt"
	"time"

	vo "melodia/internal/domain/subscription/valueobjects"
	"melodia/internal/shared/id"
)

// Subscription represents a time-bounded (or perpetual) grant of a plan to a
// user. Records are never physically deleted; lifecycle changes are status
// transitions, and a renewal creates a fresh record.
type Subscription struct {
	subID             uint
	sid               string
	userID            uint
	planID            string
	status            vo.SubscriptionStatus
	startDate         time.Time
	endDate           *time.Time
	amount            int64
	currency          string
	razorpayOrderID   string
	razorpayPaymentID string
	razorpaySignature string
	cancelledAt       *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// NewSubscription creates a new subscription grant. Free plans activate
// immediately and are perpetual (nil end date); paid plans start pending
// until payment verification and carry a computed end date.
func NewSubscription(userID uint, plan Plan, startDate time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if plan.ID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}

	status := vo.StatusPending
	if plan.IsFree() {
		status = vo.StatusActive
	}

	now := time.Now().UTC()
	return &Subscription{
		sid:       id.MustGenerateWithPrefix(id.PrefixSubscription, id.DefaultLength),
		userID:    userID,
		planID:    plan.ID,
		status:    status,
		startDate: startDate.UTC(),
		endDate:   plan.EndDateFrom(startDate),
		amount:    plan.Price,
		currency:  plan.Currency,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(subID uint, sid string, userID uint, planID string,
	status vo.SubscriptionStatus, startDate time.Time, endDate *time.Time,
	amount int64, currency string,
	razorpayOrderID, razorpayPaymentID, razorpaySignature string,
	cancelledAt *time.Time, createdAt, updatedAt time.Time) (*Subscription, error) {

	if subID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		subID:             subID,
		sid:               sid,
		userID:            userID,
		planID:            planID,
		status:            status,
		startDate:         startDate,
		endDate:           endDate,
		amount:            amount,
		currency:          currency,
		razorpayOrderID:   razorpayOrderID,
		razorpayPaymentID: razorpayPaymentID,
		razorpaySignature: razorpaySignature,
		cancelledAt:       cancelledAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.subID }
func (s *Subscription) SID() string                   { return s.sid }
func (s *Subscription) UserID() uint                  { return s.userID }
func (s *Subscription) PlanID() string                { return s.planID }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) StartDate() time.Time          { return s.startDate }
func (s *Subscription) EndDate() *time.Time           { return s.endDate }
func (s *Subscription) Amount() int64                 { return s.amount }
func (s *Subscription) Currency() string              { return s.currency }
func (s *Subscription) RazorpayOrderID() string       { return s.razorpayOrderID }
func (s *Subscription) RazorpayPaymentID() string     { return s.razorpayPaymentID }
func (s *Subscription) RazorpaySignature() string     { return s.razorpaySignature }
func (s *Subscription) CancelledAt() *time.Time       { return s.cancelledAt }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

// SetID assigns the persistence ID after creation.
func (s *Subscription) SetID(subID uint) error {
	if s.subID != 0 {
		return fmt.Errorf("subscription ID already set")
	}
	if subID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.subID = subID
	return nil
}

// Activate transitions a pending subscription to active after payment
// verification, attaching the gateway references.
func (s *Subscription) Activate(orderID, paymentID, signature string) error {
	if s.status != vo.StatusPending {
		return fmt.Errorf("cannot activate subscription in status %s", s.status)
	}
	s.status = vo.StatusActive
	s.razorpayOrderID = orderID
	s.razorpayPaymentID = paymentID
	s.razorpaySignature = signature
	s.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions an active subscription to cancelled. The record stays
// in place for history; only the status changes.
func (s *Subscription) Cancel() error {
	if s.status != vo.StatusActive && s.status != vo.StatusPending {
		return fmt.Errorf("cannot cancel subscription in status %s", s.status)
	}
	now := time.Now().UTC()
	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.updatedAt = now
	return nil
}

// IsEffectivelyActive reports whether this record grants its plan at the
// given instant: status must be active and the end date, if any, must not
// have passed. The status column is never rewritten on natural expiry;
// expiry is always computed here, on read.
func (s *Subscription) IsEffectivelyActive(now time.Time) bool {
	if s.status != vo.StatusActive {
		return false
	}
	if s.endDate == nil {
		return true
	}
	return !s.endDate.Before(now)
}

// IsPerpetual reports whether the grant has no end date (free plan).
func (s *Subscription) IsPerpetual() bool {
	return s.endDate == nil
}
