package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
)

// ScheduledEmailRepository handles scheduled broadcast persistence.
// Status transitions are enforced in SQL: pending -> sent and
// pending -> cancelled only, so a record can never be claimed twice.
type ScheduledEmailRepository struct {
	db *database.Postgres
}

// NewScheduledEmailRepository creates a new ScheduledEmailRepository
func NewScheduledEmailRepository(db *database.Postgres) *ScheduledEmailRepository {
	return &ScheduledEmailRepository{db: db}
}

// Create inserts a new scheduled email in pending status
func (r *ScheduledEmailRepository) Create(ctx context.Context, e *model.ScheduledEmail) error {
	query := `
		INSERT INTO scheduled_emails
			(id, type, post_id, product_title, product_description, product_image_url, product_link_url,
			 scheduled_for, status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Type,
		e.PostID,
		e.ProductTitle,
		e.ProductDesc,
		e.ProductImage,
		e.ProductLink,
		e.ScheduledFor,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduled email: %w", err)
	}
	return nil
}

// GetByID retrieves a scheduled email by ID
func (r *ScheduledEmailRepository) GetByID(ctx context.Context, id string) (*model.ScheduledEmail, error) {
	query := selectScheduledEmail + ` WHERE id = $1`
	return r.scanScheduledEmail(r.db.QueryRowContext(ctx, query, id))
}

// List returns all scheduled emails, soonest first
func (r *ScheduledEmailRepository) List(ctx context.Context) ([]model.ScheduledEmail, error) {
	query := selectScheduledEmail + ` ORDER BY scheduled_for ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled emails: %w", err)
	}
	defer rows.Close()

	var emails []model.ScheduledEmail
	for rows.Next() {
		e, err := r.scanScheduledEmailRows(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scheduled emails: %w", err)
	}
	return emails, nil
}

// ClaimDue atomically flips due pending records to sent and returns them.
// A record is returned by exactly one ClaimDue call across all processes.
func (r *ScheduledEmailRepository) ClaimDue(ctx context.Context, now time.Time) ([]model.ScheduledEmail, error) {
	query := `
		UPDATE scheduled_emails
		SET status = $1, sent_at = $2, updated_at = $2
		WHERE status = $3 AND scheduled_for <= $2
		RETURNING id, type, COALESCE(post_id, ''), product_title, product_description,
		          product_image_url, product_link_url, scheduled_for, status, sent_at, created_at, updated_at
	`
	rows, err := r.db.QueryContext(ctx, query, model.ScheduledEmailStatusSent, now, model.ScheduledEmailStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due scheduled emails: %w", err)
	}
	defer rows.Close()

	var emails []model.ScheduledEmail
	for rows.Next() {
		var e model.ScheduledEmail
		if err := rows.Scan(
			&e.ID, &e.Type, &e.PostID, &e.ProductTitle, &e.ProductDesc,
			&e.ProductImage, &e.ProductLink, &e.ScheduledFor, &e.Status, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan claimed scheduled email: %w", err)
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claimed scheduled emails: %w", err)
	}
	return emails, nil
}

// Cancel transitions a pending record to cancelled.
// Returns ErrNotFound if the record does not exist or is no longer pending.
func (r *ScheduledEmailRepository) Cancel(ctx context.Context, id string) error {
	query := `
		UPDATE scheduled_emails
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		model.ScheduledEmailStatusCancelled, time.Now(), id, model.ScheduledEmailStatusPending)
	if err != nil {
		return fmt.Errorf("failed to cancel scheduled email: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectScheduledEmail = `
	SELECT id, type, COALESCE(post_id, ''), product_title, product_description,
	       product_image_url, product_link_url, scheduled_for, status, sent_at, created_at, updated_at
	FROM scheduled_emails`

func (r *ScheduledEmailRepository) scanScheduledEmail(row *sql.Row) (*model.ScheduledEmail, error) {
	var e model.ScheduledEmail
	err := row.Scan(
		&e.ID, &e.Type, &e.PostID, &e.ProductTitle, &e.ProductDesc,
		&e.ProductImage, &e.ProductLink, &e.ScheduledFor, &e.Status, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scheduled email: %w", err)
	}
	return &e, nil
}

func (r *ScheduledEmailRepository) scanScheduledEmailRows(rows *sql.Rows) (*model.ScheduledEmail, error) {
	var e model.ScheduledEmail
	if err := rows.Scan(
		&e.ID, &e.Type, &e.PostID, &e.ProductTitle, &e.ProductDesc,
		&e.ProductImage, &e.ProductLink, &e.ScheduledFor, &e.Status, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan scheduled email: %w", err)
	}
	return &e, nil
}
