package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"estate/internal/model"
)

const inquiryColumns = `id, name, email, phone, message, property_id, inquiry_type, status, created_at`

// CreateInquiry stores a visitor inquiry. A property_id that does not exist
// yields model.ErrInvalidReference.
func (r *PostgresRepository) CreateInquiry(ctx context.Context, inq *model.Inquiry) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	inq.ID = uuid.NewString()
	inq.CreatedAt = time.Now().UTC()
	if inq.Status == "" {
		inq.Status = model.InquiryStatusNew
	}

	query := `
		INSERT INTO inquiries (id, name, email, phone, message, property_id, inquiry_type, status, created_at)
		VALUES (:id, :name, :email, :phone, :message, :property_id, :inquiry_type, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inq); err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrInvalidReference
		}
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// ListInquiries returns every inquiry, newest first
func (r *PostgresRepository) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	inquiries := []model.Inquiry{}
	query := fmt.Sprintf(`SELECT %s FROM inquiries ORDER BY created_at DESC, id`, inquiryColumns)
	if err := r.db.SelectContext(ctx, &inquiries, query); err != nil {
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	return inquiries, nil
}

// GetInquiry retrieves an inquiry by ID
func (r *PostgresRepository) GetInquiry(ctx context.Context, id string) (*model.Inquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var inquiry model.Inquiry
	query := fmt.Sprintf(`SELECT %s FROM inquiries WHERE id = $1`, inquiryColumns)
	if err := r.db.GetContext(ctx, &inquiry, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return &inquiry, nil
}

// UpdateInquiryStatus sets the workflow status of an inquiry
func (r *PostgresRepository) UpdateInquiryStatus(ctx context.Context, id, status string) (*model.Inquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var inquiry model.Inquiry
	query := fmt.Sprintf(`UPDATE inquiries SET status = $1 WHERE id = $2 RETURNING %s`, inquiryColumns)
	if err := r.db.GetContext(ctx, &inquiry, query, status, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry status: %w", err)
	}
	return &inquiry, nil
}
