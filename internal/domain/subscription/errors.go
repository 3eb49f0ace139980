package subscription

import "melodia/internal/shared/errors"

// ErrPlanNotFound is returned when a requested plan id is not in the catalog.
func ErrPlanNotFound(planID string) *errors.AppError {
	return errors.NewNotFoundError("plan not found", planID)
}

// ErrSubscriptionNotFound is returned when a subscription lookup misses.
func ErrSubscriptionNotFound() *errors.AppError {
	return errors.NewNotFoundError("subscription not found")
}
