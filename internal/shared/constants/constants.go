// Package constants defines shared application constants.
package constants

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Database table names
const (
	TableUsers            = "users"
	TableSubscriptions    = "subscriptions"
	TableSongs            = "songs"
	TableReviews          = "reviews"
	TablePracticeSessions = "practice_sessions"
	TableGenerations      = "generations"
	TablePayments         = "payments"
)

// Plan identifiers. The catalog itself is configuration data; these are the
// well-known keys callers fall back to.
const (
	PlanFree    = "free"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// UnlimitedQuota is the sentinel limit value meaning "no cap". It is distinct
// from 0, which means no quota at all.
const UnlimitedQuota = -1

// Gin context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserSID   = "user_sid"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)
