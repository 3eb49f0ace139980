package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_ValidInput(t *testing.T) {
	u, err := NewUser("Singer@Example.com", "Asha", "hashed-password")

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "singer@example.com", u.Email(), "email should be normalized to lowercase")
	assert.True(t, strings.HasPrefix(u.SID(), "user_"))
	assert.Equal(t, "free", u.PlanID())
	assert.False(t, u.IsPremium())
}

func TestNewUser_InvalidEmail(t *testing.T) {
	u, err := NewUser("not-an-email", "Asha", "hash")

	require.Error(t, err)
	assert.Nil(t, u)
}

func TestNewUser_ShortName(t *testing.T) {
	u, err := NewUser("singer@example.com", "A", "hash")

	require.Error(t, err)
	assert.Nil(t, u)
}

func TestNewUser_MissingPasswordHash(t *testing.T) {
	u, err := NewUser("singer@example.com", "Asha", "")

	require.Error(t, err)
	assert.Nil(t, u)
}

func TestUser_SetID(t *testing.T) {
	u, err := NewUser("singer@example.com", "Asha", "hash")
	require.NoError(t, err)

	require.NoError(t, u.SetID(42))
	assert.Equal(t, uint(42), u.ID())

	assert.Error(t, u.SetID(43), "reassigning the ID should fail")
}

func TestUser_AssignPlan(t *testing.T) {
	u, err := NewUser("singer@example.com", "Asha", "hash")
	require.NoError(t, err)

	u.AssignPlan("monthly")
	assert.Equal(t, "monthly", u.PlanID())
	assert.True(t, u.IsPremium())

	u.AssignPlan("free")
	assert.False(t, u.IsPremium())

	u.AssignPlan("")
	assert.Equal(t, "free", u.PlanID(), "empty plan falls back to free")
}

func TestReconstructUser_Valid(t *testing.T) {
	now := time.Now().UTC()
	u, err := ReconstructUser(7, "user_abc123", "singer@example.com", "Asha", "hash", "", true, "yearly", now, now)

	require.NoError(t, err)
	assert.Equal(t, uint(7), u.ID())
	assert.Equal(t, "yearly", u.PlanID())
	assert.True(t, u.IsPremium())
}

func TestReconstructUser_ZeroID(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructUser(0, "user_abc123", "singer@example.com", "Asha", "hash", "", false, "free", now, now)

	require.Error(t, err)
}

func TestReconstructUser_EmptyPlanDefaultsToFree(t *testing.T) {
	now := time.Now().UTC()
	u, err := ReconstructUser(7, "user_abc123", "singer@example.com", "Asha", "hash", "", false, "", now, now)

	require.NoError(t, err)
	assert.Equal(t, "free", u.PlanID())
}
