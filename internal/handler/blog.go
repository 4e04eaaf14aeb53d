package handler

import (
	"errors"
	"net/http"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/service"
)

// ListPosts returns the published posts, newest first
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogSvc.ListPublishedPosts(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list posts")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load posts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// GetPost returns a single published post by slug
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogSvc.GetPublishedPost(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Post not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to load post")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListComments returns the approved comments on a post
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.blogSvc.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list comments")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load comments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// AddCommentRequest is the public comment submission payload
type AddCommentRequest struct {
	AuthorName string `json:"author_name"`
	Email      string `json:"email"`
	Body       string `json:"body"`
}

// AddComment submits a comment for moderation
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	comment, err := h.blogSvc.AddComment(r.Context(), r.PathValue("id"), req.AuthorName, req.Email, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Post not found")
		case errors.Is(err, service.ErrEmptyComment):
			writeError(w, http.StatusBadRequest, "invalid_request", "Comment body is required")
		default:
			h.log.Error().Err(err).Msg("failed to add comment")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to add comment")
		}
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// --- Admin post management ---

// PostRequest is the admin create/update post payload
type PostRequest struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	BodyHTML string `json:"body_html"`
	CoverURL string `json:"cover_url"`
	Publish  bool   `json:"publish"`
}

func (r PostRequest) input() service.PostInput {
	return service.PostInput{
		Title:    r.Title,
		Excerpt:  r.Excerpt,
		BodyHTML: r.BodyHTML,
		CoverURL: r.CoverURL,
		Publish:  r.Publish,
	}
}

// AdminListPosts returns every post including drafts
func (h *Handler) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogSvc.ListAllPosts(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list posts")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load posts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// AdminCreatePost creates a post
func (h *Handler) AdminCreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Title is required")
		return
	}

	post, err := h.blogSvc.CreatePost(r.Context(), req.input())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create post")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create post")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// AdminUpdatePost updates a post
func (h *Handler) AdminUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	post, err := h.blogSvc.UpdatePost(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Post not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to update post")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// AdminDeletePost deletes a post and its comments
func (h *Handler) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.blogSvc.DeletePost(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Post not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to delete post")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin comment moderation ---

// AdminListPendingComments returns comments awaiting moderation
func (h *Handler) AdminListPendingComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.blogSvc.ListPendingComments(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list pending comments")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load comments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// AdminApproveComment approves a pending comment
func (h *Handler) AdminApproveComment(w http.ResponseWriter, r *http.Request) {
	if err := h.blogSvc.ApproveComment(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Comment not found or already moderated")
			return
		}
		h.log.Error().Err(err).Msg("failed to approve comment")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to approve comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminDeleteComment removes a comment
func (h *Handler) AdminDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.blogSvc.DeleteComment(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Comment not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to delete comment")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
