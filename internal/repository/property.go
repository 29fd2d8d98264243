package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"estate/internal/model"
	"estate/internal/search"
)

const propertyColumns = `
	id, title, description, location, governorate, city, price, price_type,
	property_type, bedrooms, bathrooms, area, parking, images, features,
	amenities, agent_name, agent_phone, agent_email, agent_image, is_featured,
	is_active, special_type, floor_number, build_year, created_at, updated_at`

// FindProperties runs a predicate conjunction, newest first
func (r *PostgresRepository) FindProperties(ctx context.Context, q search.Query) ([]model.Property, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	whereClause, args, argIndex, err := buildWhere(q.Where, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM properties WHERE %s ORDER BY created_at DESC, id`, propertyColumns, whereClause)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, q.Limit)
	}

	properties := []model.Property{}
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

// GetProperty retrieves a single property by its ID, active or not
func (r *PostgresRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var property model.Property
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// CreateProperty inserts p, assigning its ID and timestamps
func (r *PostgresRepository) CreateProperty(ctx context.Context, p *model.Property) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO properties (
			id, title, description, location, governorate, city, price, price_type,
			property_type, bedrooms, bathrooms, area, parking, images, features,
			amenities, agent_name, agent_phone, agent_email, agent_image, is_featured,
			is_active, special_type, floor_number, build_year, created_at, updated_at
		) VALUES (
			:id, :title, :description, :location, :governorate, :city, :price, :price_type,
			:property_type, :bedrooms, :bathrooms, :area, :parking, :images, :features,
			:amenities, :agent_name, :agent_phone, :agent_email, :agent_image, :is_featured,
			:is_active, :special_type, :floor_number, :build_year, :created_at, :updated_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// UpdateProperty applies a partial update and returns the stored row
func (r *PostgresRepository) UpdateProperty(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := newSetClause()
	addIf(set, "title", patch.Title)
	addIf(set, "description", patch.Description)
	addIf(set, "location", patch.Location)
	addIf(set, "governorate", patch.Governorate)
	addIf(set, "city", patch.City)
	addIf(set, "price", patch.Price)
	addIf(set, "price_type", patch.PriceType)
	addIf(set, "property_type", patch.PropertyType)
	addIf(set, "bedrooms", patch.Bedrooms)
	addIf(set, "bathrooms", patch.Bathrooms)
	addIf(set, "area", patch.Area)
	addIf(set, "parking", patch.Parking)
	if patch.Images != nil {
		set.add("images", stringArray(*patch.Images))
	}
	if patch.Features != nil {
		set.add("features", stringArray(*patch.Features))
	}
	if patch.Amenities != nil {
		set.add("amenities", stringArray(*patch.Amenities))
	}
	addIf(set, "agent_name", patch.AgentName)
	addIf(set, "agent_phone", patch.AgentPhone)
	addIf(set, "agent_email", patch.AgentEmail)
	addIf(set, "agent_image", patch.AgentImage)
	addIf(set, "is_featured", patch.IsFeatured)
	addIf(set, "is_active", patch.IsActive)
	addIf(set, "special_type", patch.SpecialType)
	addIf(set, "floor_number", patch.FloorNumber)
	addIf(set, "build_year", patch.BuildYear)
	set.add("updated_at", time.Now().UTC())

	query := fmt.Sprintf(`UPDATE properties SET %s WHERE id = $%d RETURNING %s`, set, set.argIndex, propertyColumns)
	args := append(set.args, id)

	var property model.Property
	if err := r.db.GetContext(ctx, &property, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return &property, nil
}

// DeleteProperty removes a property. Inquiries pointing at it keep their
// text but lose the reference.
func (r *PostgresRepository) DeleteProperty(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return expectAffected(result)
}
