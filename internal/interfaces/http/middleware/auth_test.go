package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melodia/internal/infrastructure/auth"
	"melodia/internal/shared/constants"
	"melodia/internal/shared/logger"
)

func authTestRouter(t *testing.T, mw gin.HandlerFunc) (*gin.Engine, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seenSID string
	r := gin.New()
	r.GET("/songs", mw, func(c *gin.Context) {
		seenSID = c.GetString(constants.ContextKeyUserSID)
		c.Status(http.StatusOK)
	})
	return r, &seenSID
}

func newAuthTestMiddleware(t *testing.T) (*AuthMiddleware, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService("test-secret", 60)
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewAuthMiddleware(jwtService, log), jwtService
}

func TestRequireAuth_MissingTokenRejected(t *testing.T) {
	mw, _ := newAuthTestMiddleware(t)
	r, _ := authTestRouter(t, mw.RequireAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidTokenRejected(t *testing.T) {
	mw, _ := newAuthTestMiddleware(t)
	r, _ := authTestRouter(t, mw.RequireAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidTokenSetsUserSID(t *testing.T) {
	mw, jwtService := newAuthTestMiddleware(t)
	r, seenSID := authTestRouter(t, mw.RequireAuth())

	token, _, err := jwtService.Generate("user_abc123def456", "alice@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user_abc123def456", *seenSID)
}

func TestOptionalAuth_NoTokenPassesThrough(t *testing.T) {
	mw, _ := newAuthTestMiddleware(t)
	r, seenSID := authTestRouter(t, mw.OptionalAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, *seenSID)
}

func TestOptionalAuth_InvalidTokenPassesThroughAnonymously(t *testing.T) {
	mw, _ := newAuthTestMiddleware(t)
	r, seenSID := authTestRouter(t, mw.OptionalAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, *seenSID)
}

func TestOptionalAuth_ValidTokenAttributesUser(t *testing.T) {
	mw, jwtService := newAuthTestMiddleware(t)
	r, seenSID := authTestRouter(t, mw.OptionalAuth())

	token, _, err := jwtService.Generate("user_abc123def456", "alice@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/songs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user_abc123def456", *seenSID)
}
