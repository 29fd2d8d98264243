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

const locationColumns = `id, name, city, governorate, image_url, is_active, created_at, updated_at`

// ListLocations returns locations ordered by name
func (r *PostgresRepository) ListLocations(ctx context.Context, activeOnly bool) ([]model.Location, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM locations`, locationColumns)
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	locations := []model.Location{}
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}
	return locations, nil
}

// GetLocation retrieves a location by ID
func (r *PostgresRepository) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var location model.Location
	query := fmt.Sprintf(`SELECT %s FROM locations WHERE id = $1`, locationColumns)
	if err := r.db.GetContext(ctx, &location, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &location, nil
}

// CreateLocation inserts loc, assigning its ID and timestamps
func (r *PostgresRepository) CreateLocation(ctx context.Context, loc *model.Location) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	loc.ID = uuid.NewString()
	loc.CreatedAt = now
	loc.UpdatedAt = now

	query := `
		INSERT INTO locations (id, name, city, governorate, image_url, is_active, created_at, updated_at)
		VALUES (:id, :name, :city, :governorate, :image_url, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, loc); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// UpdateLocation applies a partial update and returns the stored row
func (r *PostgresRepository) UpdateLocation(ctx context.Context, id string, patch model.LocationPatch) (*model.Location, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := newSetClause()
	addIf(set, "name", patch.Name)
	addIf(set, "city", patch.City)
	addIf(set, "governorate", patch.Governorate)
	addIf(set, "image_url", patch.ImageURL)
	addIf(set, "is_active", patch.IsActive)
	set.add("updated_at", time.Now().UTC())

	query := fmt.Sprintf(`UPDATE locations SET %s WHERE id = $%d RETURNING %s`, set, set.argIndex, locationColumns)
	args := append(set.args, id)

	var location model.Location
	if err := r.db.GetContext(ctx, &location, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return &location, nil
}

// DeleteLocation removes a location
func (r *PostgresRepository) DeleteLocation(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return expectAffected(result)
}
