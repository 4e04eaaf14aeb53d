package repository

import (
	"context"
	"fmt"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
)

// CommentRepository handles blog comment persistence
type CommentRepository struct {
	db *database.Postgres
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *database.Postgres) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_name, email, body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.PostID,
		c.AuthorName,
		c.Email,
		c.Body,
		c.Status,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListApprovedByPost returns approved comments for a post, oldest first
func (r *CommentRepository) ListApprovedByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	query := `
		SELECT id, post_id, author_name, email, body, status, created_at
		FROM comments
		WHERE post_id = $1 AND status = $2
		ORDER BY created_at ASC
	`
	return r.listComments(ctx, query, postID, model.CommentStatusApproved)
}

// ListPending returns comments awaiting moderation, oldest first
func (r *CommentRepository) ListPending(ctx context.Context) ([]model.Comment, error) {
	query := `
		SELECT id, post_id, author_name, email, body, status, created_at
		FROM comments
		WHERE status = $1
		ORDER BY created_at ASC
	`
	return r.listComments(ctx, query, model.CommentStatusPending)
}

// Approve marks a pending comment as approved
func (r *CommentRepository) Approve(ctx context.Context, id string) error {
	query := `UPDATE comments SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, model.CommentStatusApproved, id, model.CommentStatusPending)
	if err != nil {
		return fmt.Errorf("failed to approve comment: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentRepository) listComments(ctx context.Context, query string, args ...interface{}) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorName, &c.Email, &c.Body, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}
