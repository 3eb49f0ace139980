// Package practice holds the singing-practice session domain.
package practice

import (
	"fmt"
	"time"

	"melodia/internal/shared/id"
)

// Valid session types.
const (
	TypeWarmup   = "warmup"
	TypeSong     = "song"
	TypeExercise = "exercise"
	TypeKaraoke  = "karaoke"
)

var validSessionTypes = map[string]bool{
	TypeWarmup:   true,
	TypeSong:     true,
	TypeExercise: true,
	TypeKaraoke:  true,
}

// Session records one singing-practice run with its scored feedback.
// Duration is stored in seconds; the daily quota is compared in whole
// minutes (floor of duration/60). Scores are 0-100.
type Session struct {
	sessionID      uint
	sid            string
	userID         uint
	sessionType    string
	duration       int
	pitchScore     float64
	rhythmScore    float64
	stabilityScore float64
	overallScore   float64
	notes          string
	audioURL       string
	createdAt      time.Time
}

// NewSession creates a practice session record.
func NewSession(userID uint, sessionType string, duration int) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !validSessionTypes[sessionType] {
		return nil, fmt.Errorf("invalid session type: %s", sessionType)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	return &Session{
		sid:         id.MustGenerateWithPrefix(id.PrefixPracticeSession, id.DefaultLength),
		userID:      userID,
		sessionType: sessionType,
		duration:    duration,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructSession reconstructs a session from persistence.
func ReconstructSession(sessionID uint, sid string, userID uint, sessionType string,
	duration int, pitch, rhythm, stability, overall float64,
	notes, audioURL string, createdAt time.Time) (*Session, error) {

	if sessionID == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Session{
		sessionID:      sessionID,
		sid:            sid,
		userID:         userID,
		sessionType:    sessionType,
		duration:       duration,
		pitchScore:     pitch,
		rhythmScore:    rhythm,
		stabilityScore: stability,
		overallScore:   overall,
		notes:          notes,
		audioURL:       audioURL,
		createdAt:      createdAt,
	}, nil
}

func (s *Session) ID() uint                { return s.sessionID }
func (s *Session) SID() string             { return s.sid }
func (s *Session) UserID() uint            { return s.userID }
func (s *Session) SessionType() string     { return s.sessionType }
func (s *Session) Duration() int           { return s.duration }
func (s *Session) PitchScore() float64     { return s.pitchScore }
func (s *Session) RhythmScore() float64    { return s.rhythmScore }
func (s *Session) StabilityScore() float64 { return s.stabilityScore }
func (s *Session) OverallScore() float64   { return s.overallScore }
func (s *Session) Notes() string           { return s.notes }
func (s *Session) AudioURL() string        { return s.audioURL }
func (s *Session) CreatedAt() time.Time    { return s.createdAt }

// SetID assigns the persistence ID after creation.
func (s *Session) SetID(sessionID uint) error {
	if s.sessionID != 0 {
		return fmt.Errorf("session ID already set")
	}
	if sessionID == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.sessionID = sessionID
	return nil
}

// SetScores attaches the scored feedback for the session.
func (s *Session) SetScores(pitch, rhythm, stability, overall float64) error {
	for _, v := range []float64{pitch, rhythm, stability, overall} {
		if v < 0 || v > 100 {
			return fmt.Errorf("scores must be between 0 and 100")
		}
	}
	s.pitchScore = pitch
	s.rhythmScore = rhythm
	s.stabilityScore = stability
	s.overallScore = overall
	return nil
}

// SetNotes attaches free-form notes and the recorded audio URL.
func (s *Session) SetNotes(notes, audioURL string) {
	s.notes = notes
	s.audioURL = audioURL
}

// Minutes returns the whole practice minutes consumed by this session.
func (s *Session) Minutes() int {
	return s.duration / 60
}
