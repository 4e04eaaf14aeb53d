package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/mail"
)

// MailStatusResponse reports which credential source is active
type MailStatusResponse struct {
	Configured bool   `json:"configured"`
	Source     string `json:"source,omitempty"`
}

// AdminMailStatus reports whether sending is configured and how
func (h *Handler) AdminMailStatus(w http.ResponseWriter, r *http.Request) {
	resp := MailStatusResponse{Configured: h.mailer.IsConfigured()}
	if resp.Configured {
		if h.cfg.Mail.OfflineConfigured() {
			resp.Source = "google_oauth"
		} else {
			resp.Source = "connector"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// AdminMailAuthURL returns the Google consent URL for the setup flow
func (h *Handler) AdminMailAuthURL(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	url, err := h.mailer.AuthURL(state)
	if err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "mail_not_configured", "Google OAuth client is not configured")
			return
		}
		h.log.Error().Err(err).Msg("failed to build auth url")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to build authorization URL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url, "state": state})
}

// ExchangeCodeRequest carries the one-time authorization code
type ExchangeCodeRequest struct {
	Code string `json:"code"`
}

// AdminMailExchangeCode trades the consent code for a refresh token.
// The operator stores the returned value in config and restarts.
func (h *Handler) AdminMailExchangeCode(w http.ResponseWriter, r *http.Request) {
	var req ExchangeCodeRequest
	if err := readJSON(r, &req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Authorization code is required")
		return
	}

	refreshToken, err := h.mailer.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "mail_not_configured", "Google OAuth client is not configured")
			return
		}
		h.log.Error().Err(err).Msg("code exchange failed")
		writeError(w, http.StatusBadGateway, "exchange_failed", "The authorization code could not be exchanged")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"refresh_token": refreshToken})
}
