package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
)

// PostRepository handles blog post persistence
type PostRepository struct {
	db *database.Postgres
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *database.Postgres) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (id, slug, title, excerpt, body_html, cover_url, status, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Slug,
		p.Title,
		p.Excerpt,
		p.BodyHTML,
		p.CoverURL,
		p.Status,
		p.PublishedAt,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
		SELECT id, slug, title, excerpt, body_html, cover_url, status, published_at, created_at, updated_at
		FROM posts
		WHERE id = $1
	`
	return r.scanPost(r.db.QueryRowContext(ctx, query, id))
}

// GetBySlug retrieves a post by its URL slug
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	query := `
		SELECT id, slug, title, excerpt, body_html, cover_url, status, published_at, created_at, updated_at
		FROM posts
		WHERE slug = $1
	`
	return r.scanPost(r.db.QueryRowContext(ctx, query, slug))
}

// ListPublished returns published posts, newest first
func (r *PostRepository) ListPublished(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT id, slug, title, excerpt, body_html, cover_url, status, published_at, created_at, updated_at
		FROM posts
		WHERE status = $1
		ORDER BY published_at DESC
	`
	return r.listPosts(ctx, query, model.PostStatusPublished)
}

// ListAll returns every post regardless of status, newest first
func (r *PostRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT id, slug, title, excerpt, body_html, cover_url, status, published_at, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`
	return r.listPosts(ctx, query)
}

// Update replaces the mutable fields of a post
func (r *PostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts
		SET slug = $1, title = $2, excerpt = $3, body_html = $4, cover_url = $5,
		    status = $6, published_at = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := r.db.ExecContext(ctx, query,
		p.Slug,
		p.Title,
		p.Excerpt,
		p.BodyHTML,
		p.CoverURL,
		p.Status,
		p.PublishedAt,
		time.Now(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post and its comments
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) listPosts(ctx context.Context, query string, args ...interface{}) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.BodyHTML, &p.CoverURL,
			&p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// scanPost scans a single post row
func (r *PostRepository) scanPost(row *sql.Row) (*model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.BodyHTML, &p.CoverURL,
		&p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return &p, nil
}
