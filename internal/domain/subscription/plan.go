package subscription

import (
	"fmt"
	"time"

	"melodia/internal/shared/biztime"
	"melodia/internal/shared/constants"
)

// UnlimitedQuota mirrors constants.UnlimitedQuota for callers working with
// plan limits.
const UnlimitedQuota = constants.UnlimitedQuota

// PlanLimits holds the usage caps attached to a plan. UnlimitedQuota (-1)
// means no cap; 0 means no quota at all. The two must never be conflated:
// the sentinel alone grants unlimited use.
type PlanLimits struct {
	SongsPerMonth         int
	PracticeMinutesPerDay int
	AudioQuality          string
	AIGenerationsPerMonth int
}

// Plan is one entry of the plan catalog: a named tier of service with a
// price and usage limits. Plans are configuration data, not persisted rows.
type Plan struct {
	ID       string
	Name     string
	Price    int64
	Currency string
	Duration PlanDuration
	Features []string
	Limits   PlanLimits
}

// PlanDuration describes how long a plan grant lasts.
type PlanDuration string

const (
	DurationLifetime PlanDuration = "lifetime"
	DurationMonthly  PlanDuration = "monthly"
	DurationYearly   PlanDuration = "yearly"
)

// IsFree reports whether this is the implicit free tier.
func (p Plan) IsFree() bool {
	return p.ID == constants.PlanFree
}

// EndDateFrom computes the subscription end date for this plan starting at t.
// Lifetime plans have no end date (nil), meaning perpetual validity.
func (p Plan) EndDateFrom(t time.Time) *time.Time {
	switch p.Duration {
	case DurationMonthly:
		end := biztime.AddMonthsUTC(t, 1)
		return &end
	case DurationYearly:
		end := biztime.AddYearsUTC(t, 1)
		return &end
	default:
		return nil
	}
}

// Catalog is the versioned plan table keyed by plan id. It is injected into
// the entitlement guard at construction so tests can supply synthetic plans.
type Catalog struct {
	plans map[string]Plan
}

// NewCatalog builds a catalog from the given plans. The free plan is
// mandatory: it is the fallback for users with no subscription record.
func NewCatalog(plans []Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, fmt.Errorf("plan catalog cannot be empty")
	}

	byID := make(map[string]Plan, len(plans))
	for _, p := range plans {
		if p.ID == "" {
			return nil, fmt.Errorf("plan id is required")
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate plan id: %s", p.ID)
		}
		switch p.Duration {
		case DurationLifetime, DurationMonthly, DurationYearly:
		default:
			return nil, fmt.Errorf("plan %s has invalid duration: %s", p.ID, p.Duration)
		}
		byID[p.ID] = p
	}

	if _, ok := byID[constants.PlanFree]; !ok {
		return nil, fmt.Errorf("plan catalog must include the %q plan", constants.PlanFree)
	}

	return &Catalog{plans: byID}, nil
}

// Get returns the plan for the given id and whether it exists.
func (c *Catalog) Get(planID string) (Plan, bool) {
	p, ok := c.plans[planID]
	return p, ok
}

// Resolve returns the plan for the given id, falling back to the free plan
// for unknown ids. Unknown ids are not an error: the guard treats them as
// the implicit free tier, same as a missing subscription.
func (c *Catalog) Resolve(planID string) Plan {
	if p, ok := c.plans[planID]; ok {
		return p
	}
	return c.plans[constants.PlanFree]
}

// Free returns the free plan.
func (c *Catalog) Free() Plan {
	return c.plans[constants.PlanFree]
}

// All returns every plan in the catalog.
func (c *Catalog) All() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	return out
}
