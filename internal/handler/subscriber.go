package handler

import (
	"errors"
	"net/http"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/service"
)

// SubscribeRequest is the newsletter signup payload
type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe adds an email address to the newsletter list
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	sub, err := h.newsletterSvc.Subscribe(r.Context(), req.Email, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "invalid_email", "Invalid email address")
		case errors.Is(err, service.ErrAlreadySubscribed):
			writeError(w, http.StatusConflict, "already_subscribed", "This email is already subscribed")
		default:
			h.log.Error().Err(err).Msg("failed to subscribe")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to subscribe")
		}
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// UnsubscribeRequest is the newsletter opt-out payload
type UnsubscribeRequest struct {
	Email string `json:"email"`
}

// Unsubscribe removes an email address from the newsletter list
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.newsletterSvc.Unsubscribe(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, "invalid_email", "Invalid email address")
			return
		}
		h.log.Error().Err(err).Msg("failed to unsubscribe")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to unsubscribe")
		return
	}
	// Always succeeds for unknown addresses; no list probing
	w.WriteHeader(http.StatusNoContent)
}

// AdminListSubscribers returns the full subscriber list
func (h *Handler) AdminListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.newsletterSvc.ListSubscribers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list subscribers")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load subscribers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subscribers": subs,
		"count":       len(subs),
	})
}
