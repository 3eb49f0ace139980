package usecases

import (
	"context"

	entitlement "melodia/internal/application/entitlement/usecases"
	"melodia/internal/domain/practice"
	"melodia/internal/domain/user"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type RecordSessionCommand struct {
	UserSID        string
	SessionType    string
	Duration       int
	PitchScore     float64
	RhythmScore    float64
	StabilityScore float64
	OverallScore   float64
	Notes          string
	AudioURL       string
}

type RecordSessionResult struct {
	Session          *practice.Session
	RemainingMinutes *int
}

// RecordSessionUseCase records a completed practice session after the
// entitlement guard admits the user under their daily practice allowance.
// The session that crosses the limit is still recorded in full; the guard
// gates the next one.
type RecordSessionUseCase struct {
	practiceRepo practice.Repository
	userRepo     user.Repository
	guard        *entitlement.Guard
	logger       logger.Interface
}

func NewRecordSessionUseCase(
	practiceRepo practice.Repository,
	userRepo user.Repository,
	guard *entitlement.Guard,
	logger logger.Interface,
) *RecordSessionUseCase {
	return &RecordSessionUseCase{
		practiceRepo: practiceRepo,
		userRepo:     userRepo,
		guard:        guard,
		logger:       logger,
	}
}

func (uc *RecordSessionUseCase) Execute(ctx context.Context, cmd RecordSessionCommand) (*RecordSessionResult, error) {
	decision := uc.guard.CanPracticeMore(ctx, cmd.UserSID)
	if !decision.Allowed {
		return nil, errors.NewForbiddenError(decision.Reason)
	}

	targetUser, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user by SID", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to record practice session")
	}
	if targetUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	session, err := practice.NewSession(targetUser.ID(), cmd.SessionType, cmd.Duration)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := session.SetScores(cmd.PitchScore, cmd.RhythmScore, cmd.StabilityScore, cmd.OverallScore); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	session.SetNotes(cmd.Notes, cmd.AudioURL)

	if err := uc.practiceRepo.Create(ctx, session); err != nil {
		uc.logger.Errorw("failed to persist practice session", "user_sid", cmd.UserSID, "error", err)
		return nil, errors.NewInternalError("failed to record practice session")
	}

	uc.logger.Infow("practice session recorded",
		"session_sid", session.SID(), "user_sid", cmd.UserSID, "type", session.SessionType(), "duration", session.Duration())
	return &RecordSessionResult{Session: session, RemainingMinutes: decision.RemainingMinutes}, nil
}
