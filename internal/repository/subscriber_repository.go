package repository

import (
	"context"
	"fmt"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
)

// SubscriberRepository handles newsletter subscriber persistence
type SubscriberRepository struct {
	db *database.Postgres
}

// NewSubscriberRepository creates a new SubscriberRepository
func NewSubscriberRepository(db *database.Postgres) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Create inserts a new subscriber
func (r *SubscriberRepository) Create(ctx context.Context, s *model.Subscriber) error {
	query := `
		INSERT INTO subscribers (id, email, name, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Email, s.Name, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

// ExistsByEmail checks if a subscriber with the given email exists
func (r *SubscriberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM subscribers WHERE email = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subscriber existence: %w", err)
	}
	return exists, nil
}

// List returns all subscribers ordered by signup time
func (r *SubscriberRepository) List(ctx context.Context) ([]model.Subscriber, error) {
	query := `
		SELECT id, email, name, created_at
		FROM subscribers
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}
	return subscribers, nil
}

// DeleteByEmail removes a subscriber by email address
func (r *SubscriberRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM subscribers WHERE email = $1`
	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of subscribers
func (r *SubscriberRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
