package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/auth"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

func newLoginHandler(t *testing.T, password string) *Handler {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Admin.PasswordHash = hash
	cfg.Admin.SessionSecret = "test-session-secret"

	sessions, err := auth.NewSessionService(cfg.Admin)
	require.NoError(t, err)

	log := logger.New("error", "json")
	return New(nil, nil, log, cfg, nil, nil, nil, nil, nil, nil, sessions)
}

func TestLoginSuccess(t *testing.T) {
	h := newLoginHandler(t, "correct horse")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"correct horse"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginWrongPassword(t *testing.T) {
	h := newLoginHandler(t, "correct horse")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"battery staple"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginNotConfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.Admin.SessionSecret = "test-session-secret"
	sessions, err := auth.NewSessionService(cfg.Admin)
	require.NoError(t, err)

	h := New(nil, nil, logger.New("error", "json"), cfg, nil, nil, nil, nil, nil, nil, sessions)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"anything"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newLoginHandler(t, "correct horse")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
