package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"melodia/internal/shared/id"
)

// User represents the user aggregate root (pure domain model without persistence concerns)
type User struct {
	id           uint
	sid          string
	email        string
	name         string
	passwordHash string
	avatar       string
	isPremium    bool
	planID       string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with a generated Stripe-style SID.
func NewUser(email, name, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %w", err)
	}
	if len(name) < 2 {
		return nil, fmt.Errorf("name must be at least 2 characters")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		sid:          id.MustGenerateWithPrefix(id.PrefixUser, id.DefaultLength),
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		planID:       "free",
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(userID uint, sid, email, name, passwordHash, avatar string,
	isPremium bool, planID string, createdAt, updatedAt time.Time) (*User, error) {

	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if planID == "" {
		planID = "free"
	}

	return &User{
		id:           userID,
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		avatar:       avatar,
		isPremium:    isPremium,
		planID:       planID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint              { return u.id }
func (u *User) SID() string           { return u.sid }
func (u *User) Email() string         { return u.email }
func (u *User) Name() string          { return u.name }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Avatar() string        { return u.avatar }
func (u *User) IsPremium() bool       { return u.isPremium }
func (u *User) PlanID() string        { return u.planID }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }

// SetID assigns the persistence ID after creation.
func (u *User) SetID(userID uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = userID
	return nil
}

// SetAvatar updates the avatar URL.
func (u *User) SetAvatar(avatar string) {
	u.avatar = avatar
	u.updatedAt = time.Now().UTC()
}

// AssignPlan records the user's current plan and premium flag. Called after
// subscription creation or payment verification, mirroring the denormalized
// plan columns kept on the user record.
func (u *User) AssignPlan(planID string) {
	if planID == "" {
		planID = "free"
	}
	u.planID = planID
	u.isPremium = planID != "free"
	u.updatedAt = time.Now().UTC()
}
