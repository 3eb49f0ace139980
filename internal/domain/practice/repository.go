package practice

import (
	"context"
	"time"
)

// Stats aggregates a user's practice history.
type Stats struct {
	TotalSessions    int64
	TotalDuration    int64
	AvgPitchScore    float64
	AvgRhythmScore   float64
	AvgStability     float64
	AvgOverallScore  float64
}

// Repository defines persistence operations for practice sessions.
type Repository interface {
	Create(ctx context.Context, s *Session) error

	// ListByUserID returns the user's sessions, newest first, optionally
	// filtered by session type ("" or "all" matches every type).
	ListByUserID(ctx context.Context, userID uint, sessionType string, limit int) ([]*Session, error)

	// SumDurationSince sums the duration (seconds) of the user's sessions
	// created at or after since. Quota consumption is derived from this
	// aggregate on every check rather than a maintained counter.
	SumDurationSince(ctx context.Context, userID uint, since time.Time) (int64, error)

	// StatsByUserID aggregates session counts, total duration, and average
	// scores, optionally filtered by session type.
	StatsByUserID(ctx context.Context, userID uint, sessionType string) (*Stats, error)
}
