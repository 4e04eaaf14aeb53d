package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/mail"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/service"
)

// SendEmailRequest is the admin single-send payload
type SendEmailRequest struct {
	To            string `json:"to"`
	Subject       string `json:"subject"`
	HTMLBody      string `json:"html_body"`
	AttachmentURL string `json:"attachment_url"`
	Filename      string `json:"filename"`
}

// AdminSendEmail sends a one-off email, optionally with a fetched attachment
func (h *Handler) AdminSendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.To == "" || req.Subject == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Recipient and subject are required")
		return
	}

	var err error
	if req.AttachmentURL != "" {
		err = h.mailer.SendSingleWithAttachment(r.Context(), req.To, req.Subject, req.HTMLBody, req.AttachmentURL, req.Filename, "")
	} else {
		err = h.mailer.SendSingle(r.Context(), req.To, req.Subject, req.HTMLBody, "")
	}
	if err != nil {
		h.writeMailError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sent": true})
}

// BroadcastRequest is the admin broadcast payload. When recipients is
// empty the message goes to the full subscriber list.
type BroadcastRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	HTMLBody   string   `json:"html_body"`
}

// BroadcastResponse reports the aggregate outcome plus any failed addresses
type BroadcastResponse struct {
	SentCount int      `json:"sent_count"`
	Attempted int      `json:"attempted"`
	Failed    []string `json:"failed,omitempty"`
}

// AdminBroadcast sends a message to a recipient list or all subscribers
func (h *Handler) AdminBroadcast(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Subject == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Subject is required")
		return
	}

	var result mail.BroadcastResult
	var err error
	if len(req.Recipients) > 0 {
		result, err = h.mailer.Broadcast(r.Context(), req.Recipients, req.Subject, req.HTMLBody)
	} else {
		result, err = h.newsletterSvc.SendMarketingEmail(r.Context(), req.Subject, req.HTMLBody)
	}
	if err != nil {
		h.writeMailError(w, err)
		return
	}

	resp := BroadcastResponse{
		SentCount: result.SentCount,
		Attempted: len(result.Results),
	}
	for _, rr := range result.Results {
		if rr.Err != nil {
			resp.Failed = append(resp.Failed, rr.Address)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeMailError maps mail errors to HTTP responses
func (h *Handler) writeMailError(w http.ResponseWriter, err error) {
	var fetchErr *mail.AttachmentFetchError
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "mail_not_configured", "Email sending is not configured")
	case errors.Is(err, mail.ErrReauthRequired):
		writeError(w, http.StatusBadGateway, "reauth_required", "The Google account must be re-authorized")
	case errors.Is(err, mail.ErrNotConnected):
		writeError(w, http.StatusBadGateway, "not_connected", "No Gmail connection is available")
	case errors.Is(err, mail.ErrNoRecipients):
		writeError(w, http.StatusBadRequest, "no_recipients", "The recipient list is empty")
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, "attachment_fetch_failed", "The attachment could not be fetched")
	default:
		h.log.Error().Err(err).Msg("email send failed")
		writeError(w, http.StatusBadGateway, "send_failed", "The email could not be sent")
	}
}

// --- Scheduled emails ---

// ScheduleRequest is the admin payload for scheduling a broadcast
type ScheduleRequest struct {
	Type         string    `json:"type"`
	PostID       string    `json:"post_id"`
	ProductTitle string    `json:"product_title"`
	ProductDesc  string    `json:"product_description"`
	ProductImage string    `json:"product_image_url"`
	ProductLink  string    `json:"product_link_url"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// AdminCreateSchedule schedules a future broadcast
func (h *Handler) AdminCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	record, err := h.scheduleSvc.Create(r.Context(), service.ScheduleInput{
		Type:         model.ScheduledEmailType(req.Type),
		PostID:       req.PostID,
		ProductTitle: req.ProductTitle,
		ProductDesc:  req.ProductDesc,
		ProductImage: req.ProductImage,
		ProductLink:  req.ProductLink,
		ScheduledFor: req.ScheduledFor,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleInThePast), errors.Is(err, service.ErrInvalidScheduleRef):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.Error().Err(err).Msg("failed to create schedule")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create schedule")
		}
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// AdminListSchedules returns all scheduled emails
func (h *Handler) AdminListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleSvc.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list schedules")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load schedules")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"schedules": schedules})
}

// AdminCancelSchedule cancels a pending scheduled email
func (h *Handler) AdminCancelSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleSvc.Cancel(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Schedule not found or no longer pending")
			return
		}
		h.log.Error().Err(err).Msg("failed to cancel schedule")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to cancel schedule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
