package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"estate/internal/model"
)

const contactColumns = `
	id, phone, email, facebook_url, instagram_url, twitter_url, linkedin_url,
	youtube_url, whatsapp_number, address, company_name, created_at, updated_at`

// GetContactSettings returns the contact settings row, or nil if none was saved
func (r *PostgresRepository) GetContactSettings(ctx context.Context) (*model.ContactSettings, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var settings model.ContactSettings
	query := fmt.Sprintf(`SELECT %s FROM contact_settings ORDER BY created_at LIMIT 1`, contactColumns)
	if err := r.db.GetContext(ctx, &settings, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact settings: %w", err)
	}
	return &settings, nil
}

// UpsertContactSettings updates the existing row or creates the first one.
// When a concurrent call inserted the first row in the meantime, the update
// is retried against that row.
func (r *PostgresRepository) UpsertContactSettings(ctx context.Context, in model.ContactSettingsInput) (*model.ContactSettings, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	settings, err := r.upsertContactSettings(ctx, in)
	if isUniqueViolation(err) {
		settings, err = r.upsertContactSettings(ctx, in)
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *PostgresRepository) upsertContactSettings(ctx context.Context, in model.ContactSettingsInput) (*model.ContactSettings, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var settings model.ContactSettings
	query := fmt.Sprintf(`SELECT %s FROM contact_settings ORDER BY created_at LIMIT 1 FOR UPDATE`, contactColumns)
	err = tx.GetContext(ctx, &settings, query)
	exists := true
	if err == sql.ErrNoRows {
		exists = false
		settings = model.ContactSettings{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load contact settings: %w", err)
	}

	in.Apply(&settings)
	settings.UpdatedAt = time.Now().UTC()

	if exists {
		_, err = tx.NamedExecContext(ctx, `
			UPDATE contact_settings SET
				phone = :phone, email = :email, facebook_url = :facebook_url,
				instagram_url = :instagram_url, twitter_url = :twitter_url,
				linkedin_url = :linkedin_url, youtube_url = :youtube_url,
				whatsapp_number = :whatsapp_number, address = :address,
				company_name = :company_name, updated_at = :updated_at
			WHERE id = :id`, &settings)
	} else {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO contact_settings (
				id, phone, email, facebook_url, instagram_url, twitter_url, linkedin_url,
				youtube_url, whatsapp_number, address, company_name, created_at, updated_at
			) VALUES (
				:id, :phone, :email, :facebook_url, :instagram_url, :twitter_url, :linkedin_url,
				:youtube_url, :whatsapp_number, :address, :company_name, :created_at, :updated_at
			)`, &settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save contact settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit contact settings: %w", err)
	}
	return &settings, nil
}
