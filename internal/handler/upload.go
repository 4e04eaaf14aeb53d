package handler

import (
	"net/http"
)

// maxUploadSize caps admin uploads at 20 MiB
const maxUploadSize = 20 << 20

// AdminUpload stores a file (cover image, PDF attachment) and returns
// its public URL
func (h *Handler) AdminUpload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_not_configured", "File storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "A file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.store.Put(r.Context(), file, header.Size, header.Filename, contentType)
	if err != nil {
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("upload failed")
		writeError(w, http.StatusBadGateway, "upload_failed", "The file could not be stored")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
