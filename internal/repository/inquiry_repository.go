package repository

import (
	"context"
	"fmt"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
)

// InquiryRepository handles contact-form submission persistence
type InquiryRepository struct {
	db *database.Postgres
}

// NewInquiryRepository creates a new InquiryRepository
func NewInquiryRepository(db *database.Postgres) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create inserts a new inquiry
func (r *InquiryRepository) Create(ctx context.Context, i *model.Inquiry) error {
	query := `
		INSERT INTO inquiries (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, i.ID, i.Name, i.Email, i.Subject, i.Message, i.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// List returns all inquiries, newest first
func (r *InquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	query := `
		SELECT id, name, email, subject, message, created_at
		FROM inquiries
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []model.Inquiry
	for rows.Next() {
		var i model.Inquiry
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Subject, &i.Message, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inquiries: %w", err)
	}
	return inquiries, nil
}
