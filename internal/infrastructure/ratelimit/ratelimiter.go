package ratelimit

import (
	"context"
	"time"
)

// Config holds the request caps per rolling window. A zero value disables
// that window.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

// RateLimiter throttles repeated calls per key. This sits in front of the
// expensive endpoints (AI generation, video rendering) as abuse protection;
// it is independent of plan quotas, which are enforced by the entitlement
// guard.
type RateLimiter interface {
	Allow(ctx context.Context, key string, config Config) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
