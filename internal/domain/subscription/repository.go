package subscription

import (
	"context"
	"time"
)

// Repository defines persistence operations for subscription records.
// Implementations return (nil, nil) when no record matches.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, subID uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)

	// GetCurrentByUserID returns the user's current subscription: the most
	// recently created record with status=active whose end date is null or
	// not before now. Two simultaneously active records are resolved by
	// newest creation time; this is a defined tie-break, not an error.
	GetCurrentByUserID(ctx context.Context, userID uint, now time.Time) (*Subscription, error)

	// ListByUserID returns all of a user's subscription records, newest first.
	ListByUserID(ctx context.Context, userID uint) ([]*Subscription, error)

	Update(ctx context.Context, sub *Subscription) error
}
