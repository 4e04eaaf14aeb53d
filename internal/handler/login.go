package handler

import (
	"net/http"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/auth"
)

const sessionCookieName = "aeon_admin_session"

// LoginRequest is the admin login payload
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// Login verifies the admin password and issues a session token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if h.cfg.Admin.PasswordHash == "" {
		writeError(w, http.StatusServiceUnavailable, "not_configured", "Admin login is not configured")
		return
	}

	ok, err := auth.VerifyPassword(req.Password, h.cfg.Admin.PasswordHash)
	if err != nil || !ok {
		h.log.Warn().Str("ip", getClientIP(r)).Msg("failed admin login attempt")
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid password")
		return
	}

	token, err := h.sessions.Issue()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to issue session token")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int(h.sessions.TTL().Seconds()),
	})
}

// Logout clears the admin session cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}
