// Package valueobjects contains subscription value objects.
package valueobjects

// SubscriptionStatus represents the lifecycle state of a subscription record.
//
// pending → active on payment verification; active → cancelled on user
// request. Records whose end date passes are NOT transitioned: effective
// expiry is computed on read by comparing end date to now.
type SubscriptionStatus string

const (
	StatusPending   SubscriptionStatus = "pending"
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusCompleted SubscriptionStatus = "completed"
)

// ValidStatuses is the set of statuses accepted from persistence.
var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusCancelled: true,
	StatusCompleted: true,
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is a known lifecycle state.
func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}
