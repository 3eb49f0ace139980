package generation

import (
	"context"
	"time"
)

// Repository defines persistence operations for AI-generation usage events.
type Repository interface {
	Create(ctx context.Context, g *Generation) error

	// CountByUserSince counts generation events for userID created at or
	// after since, across all kinds. This backs the monthly AI quota.
	CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error)

	// ListByUserID returns the user's generation events, newest first.
	ListByUserID(ctx context.Context, userID uint, kind string, limit int) ([]*Generation, error)
}
