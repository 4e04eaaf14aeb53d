package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/auth"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

func newAuthMiddleware(t *testing.T) (func(http.Handler) http.Handler, *auth.SessionService) {
	t.Helper()

	sessions, err := auth.NewSessionService(config.AdminConfig{SessionSecret: "test-secret"})
	require.NoError(t, err)

	mw := New(nil, logger.New("error", "json"), &config.Config{})
	return mw.AdminAuth(sessions), sessions
}

func TestAdminAuthBearerToken(t *testing.T) {
	authMw, sessions := newAuthMiddleware(t)

	token, err := sessions.Issue()
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authMw(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestAdminAuthCookie(t *testing.T) {
	authMw, sessions := newAuthMiddleware(t)

	token, err := sessions.Issue()
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/posts", nil)
	req.AddCookie(&http.Cookie{Name: "aeon_admin_session", Value: token})
	w := httptest.NewRecorder()
	authMw(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestAdminAuthMissingToken(t *testing.T) {
	authMw, _ := newAuthMiddleware(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/posts", nil)
	w := httptest.NewRecorder()
	authMw(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthBadToken(t *testing.T) {
	authMw, _ := newAuthMiddleware(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/posts", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	authMw(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
