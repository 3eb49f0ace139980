// Package usecases provides the entitlement guard: the decision logic that
// determines which actions a user's subscription plan permits right now.
package usecases

import (
	"context"
	"fmt"
	"time"

	"melodia/internal/domain/generation"
	"melodia/internal/domain/practice"
	"melodia/internal/domain/song"
	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	"melodia/internal/shared/biztime"
	"melodia/internal/shared/logger"
)

// Deny reasons surfaced to callers. Quota reasons are formatted with the
// numeric limit; these two are fixed strings.
const (
	ReasonUserNotFound = "User not found"
	ReasonCheckFailed  = "Error checking subscription"
)

// Decision is the structured outcome of an entitlement check. Guard
// operations always return a Decision, never an error: not-found and
// over-quota are expected outcomes carried in Reason, and infrastructure
// failures degrade to a deny with a generic reason.
type Decision struct {
	Allowed   bool   `json:"allowed"`
	Remaining *int   `json:"remaining,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// PracticeDecision is the outcome of a practice-time check.
type PracticeDecision struct {
	Allowed          bool   `json:"allowed"`
	RemainingMinutes *int   `json:"remaining_minutes,omitempty"`
	Reason           string `json:"reason,omitempty"`
}

// PlanInfo describes a user's effective plan. Subscription is nil when the
// user is on the implicit free tier (no subscription record).
type PlanInfo struct {
	Plan         subscription.Plan
	IsPremium    bool
	Subscription *subscription.Subscription
}

// Guard answers "can user U perform action A right now?" against the plan
// catalog and the user's counted usage.
//
// Current-subscription resolution always prefers the most recently created
// active record; an active record whose end date has passed is skipped (the
// status column itself is never rewritten). Absence of any record is the
// implicit free plan, not an error.
//
// Checks are read-mostly and safe to issue concurrently for different
// users. Within one user there is a race between "check quota" and "record
// usage": two concurrent requests can both observe remaining=1 and proceed.
// The limit is soft; strict caps would need the check and the usage insert
// wrapped in a single serializable transaction.
type Guard struct {
	userRepo       user.Repository
	subRepo        subscription.Repository
	songRepo       song.Repository
	practiceRepo   practice.Repository
	generationRepo generation.Repository
	catalog        *subscription.Catalog
	logger         logger.Interface
	now            func() time.Time
}

// NewGuard creates an entitlement guard. The plan catalog is injected so
// tests can supply synthetic plans without touching global state.
func NewGuard(
	userRepo user.Repository,
	subRepo subscription.Repository,
	songRepo song.Repository,
	practiceRepo practice.Repository,
	generationRepo generation.Repository,
	catalog *subscription.Catalog,
	logger logger.Interface,
) *Guard {
	return &Guard{
		userRepo:       userRepo,
		subRepo:        subRepo,
		songRepo:       songRepo,
		practiceRepo:   practiceRepo,
		generationRepo: generationRepo,
		catalog:        catalog,
		logger:         logger,
		now:            biztime.NowUTC,
	}
}

// CanCreateSong decides whether the user may create another song this
// calendar month (UTC window).
func (g *Guard) CanCreateSong(ctx context.Context, userSID string) Decision {
	u, plan, decision := g.resolve(ctx, userSID)
	if decision != nil {
		return *decision
	}

	limit := plan.Limits.SongsPerMonth
	if limit == subscription.UnlimitedQuota {
		return Decision{Allowed: true}
	}

	count, err := g.songRepo.CountByAuthorSince(ctx, u.ID(), biztime.StartOfMonthUTC(g.now()))
	if err != nil {
		g.logger.Errorw("failed to count songs for quota check", "user_sid", userSID, "error", err)
		return Decision{Allowed: false, Reason: ReasonCheckFailed}
	}

	remaining := limit - int(count)
	if remaining <= 0 {
		zero := 0
		return Decision{
			Allowed:   false,
			Remaining: &zero,
			Reason:    fmt.Sprintf("Monthly song limit reached (%d songs)", limit),
		}
	}

	return Decision{Allowed: true, Remaining: &remaining}
}

// CanUseAIGeneration decides whether the user may run another AI generation
// this calendar month. Usage is counted from recorded generation events, one
// row per lyrics or music call.
func (g *Guard) CanUseAIGeneration(ctx context.Context, userSID string) Decision {
	u, plan, decision := g.resolve(ctx, userSID)
	if decision != nil {
		return *decision
	}

	limit := plan.Limits.AIGenerationsPerMonth
	if limit == subscription.UnlimitedQuota {
		return Decision{Allowed: true}
	}

	count, err := g.generationRepo.CountByUserSince(ctx, u.ID(), biztime.StartOfMonthUTC(g.now()))
	if err != nil {
		g.logger.Errorw("failed to count generations for quota check", "user_sid", userSID, "error", err)
		return Decision{Allowed: false, Reason: ReasonCheckFailed}
	}

	remaining := limit - int(count)
	if remaining <= 0 {
		zero := 0
		return Decision{
			Allowed:   false,
			Remaining: &zero,
			Reason:    fmt.Sprintf("Monthly AI generation limit reached (%d generations)", limit),
		}
	}

	return Decision{Allowed: true, Remaining: &remaining}
}

// CanPracticeMore decides whether the user may practice more today. Daily
// consumption is the floor-division to whole minutes of the summed duration
// seconds of today's sessions (UTC day).
func (g *Guard) CanPracticeMore(ctx context.Context, userSID string) PracticeDecision {
	u, plan, decision := g.resolve(ctx, userSID)
	if decision != nil {
		return PracticeDecision{Allowed: decision.Allowed, Reason: decision.Reason}
	}

	limit := plan.Limits.PracticeMinutesPerDay
	if limit == subscription.UnlimitedQuota {
		return PracticeDecision{Allowed: true}
	}

	totalSeconds, err := g.practiceRepo.SumDurationSince(ctx, u.ID(), biztime.StartOfDayUTC(g.now()))
	if err != nil {
		g.logger.Errorw("failed to sum practice duration for quota check", "user_sid", userSID, "error", err)
		return PracticeDecision{Allowed: false, Reason: ReasonCheckFailed}
	}

	minutesToday := int(totalSeconds / 60)
	remaining := limit - minutesToday
	if remaining <= 0 {
		zero := 0
		return PracticeDecision{
			Allowed:          false,
			RemainingMinutes: &zero,
			Reason:           fmt.Sprintf("Daily practice limit reached (%d minutes)", limit),
		}
	}

	return PracticeDecision{Allowed: true, RemainingMinutes: &remaining}
}

// CanAccessPremium reports whether the user holds an effectively active paid
// subscription. Any failure resolves to false.
func (g *Guard) CanAccessPremium(ctx context.Context, userSID string) bool {
	info := g.GetUserPlan(ctx, userSID)
	return info.IsPremium
}

// GetUserPlan resolves the user's effective plan. Failures and missing users
// resolve to the free plan so the UI always gets a usable answer.
func (g *Guard) GetUserPlan(ctx context.Context, userSID string) PlanInfo {
	free := PlanInfo{Plan: g.catalog.Free()}

	u, err := g.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		g.logger.Errorw("failed to look up user for plan resolution", "user_sid", userSID, "error", err)
		return free
	}
	if u == nil {
		return free
	}

	sub, err := g.subRepo.GetCurrentByUserID(ctx, u.ID(), g.now())
	if err != nil {
		g.logger.Errorw("failed to resolve current subscription", "user_sid", userSID, "error", err)
		return free
	}
	if sub == nil {
		return free
	}

	plan := g.catalog.Resolve(sub.PlanID())
	return PlanInfo{
		Plan:         plan,
		IsPremium:    !plan.IsFree(),
		Subscription: sub,
	}
}

// resolve looks up the user and their effective plan. A non-nil Decision
// means the check is already settled (user missing or store failure) and
// must be returned as-is.
func (g *Guard) resolve(ctx context.Context, userSID string) (*user.User, subscription.Plan, *Decision) {
	u, err := g.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		g.logger.Errorw("failed to look up user for entitlement check", "user_sid", userSID, "error", err)
		return nil, subscription.Plan{}, &Decision{Allowed: false, Reason: ReasonCheckFailed}
	}
	if u == nil {
		return nil, subscription.Plan{}, &Decision{Allowed: false, Reason: ReasonUserNotFound}
	}

	sub, err := g.subRepo.GetCurrentByUserID(ctx, u.ID(), g.now())
	if err != nil {
		g.logger.Errorw("failed to resolve current subscription", "user_sid", userSID, "error", err)
		return nil, subscription.Plan{}, &Decision{Allowed: false, Reason: ReasonCheckFailed}
	}

	if sub == nil {
		return u, g.catalog.Free(), nil
	}
	return u, g.catalog.Resolve(sub.PlanID()), nil
}
