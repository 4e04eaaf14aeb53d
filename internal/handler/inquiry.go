package handler

import (
	"net/http"
)

// InquiryRequest is the public contact form payload
type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitInquiry stores a contact form submission and notifies the owner
func (h *Handler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	inquiry, err := h.inquirySvc.Submit(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": inquiry.ID})
}

// AdminListInquiries returns all contact form submissions
func (h *Handler) AdminListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.inquirySvc.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list inquiries")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load inquiries")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"inquiries": inquiries})
}
