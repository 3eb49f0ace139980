// Package cache holds Redis-backed read caches. The plan cache is advisory:
// entitlement checks always fall back to the database when Redis misses or
// fails, so a cold or down cache degrades latency, never correctness.
package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"melodia/internal/shared/logger"
)

// CachedPlan is the cached effective-plan resolution for one user.
type CachedPlan struct {
	PlanID    string
	IsPremium bool
	// NoSubscription marks a user with no subscription record, so they
	// resolve to the free plan. Cached briefly to stop repeated lookups.
	NoSubscription bool
}

// UserPlanCache caches effective-plan lookups keyed by user SID.
type UserPlanCache interface {
	Get(ctx context.Context, userSID string) (*CachedPlan, error)
	Set(ctx context.Context, userSID string, plan *CachedPlan) error
	Invalidate(ctx context.Context, userSID string) error
	SetNullMarker(ctx context.Context, userSID string) error
}

const (
	planKeyPrefix = "user:plan:"
	basePlanTTL   = 5 * time.Minute
	planTTLJitter = 2 * time.Minute // TTL range 5-7 min, anti-stampede
	nullMarkerTTL = 1 * time.Minute

	fieldPlanID     = "plan_id"
	fieldIsPremium  = "is_premium"
	fieldNullMarker = "_null"
)

// RedisUserPlanCache implements UserPlanCache using a Redis hash per user.
type RedisUserPlanCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisUserPlanCache(client *redis.Client, logger logger.Interface) *RedisUserPlanCache {
	return &RedisUserPlanCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisUserPlanCache) key(userSID string) string {
	return planKeyPrefix + userSID
}

func (c *RedisUserPlanCache) Get(ctx context.Context, userSID string) (*CachedPlan, error) {
	result, err := c.client.HGetAll(ctx, c.key(userSID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get plan from cache: %w", err)
	}

	if len(result) == 0 {
		return nil, nil // cache miss
	}

	if result[fieldNullMarker] == "1" {
		return &CachedPlan{NoSubscription: true}, nil
	}

	return &CachedPlan{
		PlanID:    result[fieldPlanID],
		IsPremium: result[fieldIsPremium] == "1",
	}, nil
}

func (c *RedisUserPlanCache) Set(ctx context.Context, userSID string, plan *CachedPlan) error {
	key := c.key(userSID)

	isPremium := "0"
	if plan.IsPremium {
		isPremium = "1"
	}
	fields := map[string]interface{}{
		fieldPlanID:    plan.PlanID,
		fieldIsPremium: isPremium,
	}

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, basePlanTTL+rand.N(planTTLJitter))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set plan in cache: %w", err)
	}

	return nil
}

func (c *RedisUserPlanCache) Invalidate(ctx context.Context, userSID string) error {
	if err := c.client.Del(ctx, c.key(userSID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan cache: %w", err)
	}
	return nil
}

func (c *RedisUserPlanCache) SetNullMarker(ctx context.Context, userSID string) error {
	key := c.key(userSID)

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fieldNullMarker, "1")
	pipe.Expire(ctx, key, nullMarkerTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set null marker: %w", err)
	}

	return nil
}
