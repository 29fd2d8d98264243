package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"estate/internal/model"
)

// GetAdminByEmail looks up an admin account, case-insensitively
func (r *PostgresRepository) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var admin model.Admin
	query := `SELECT id, email, password, created_at FROM admins WHERE LOWER(email) = LOWER($1)`
	if err := r.db.GetContext(ctx, &admin, query, strings.TrimSpace(email)); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// CreateAdmin inserts an admin whose Password is already a bcrypt hash
func (r *PostgresRepository) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	admin.CreatedAt = time.Now().UTC()
	query := `INSERT INTO admins (email, password, created_at) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(admin.Email), admin.Password, admin.CreatedAt).Scan(&admin.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s already exists: %w", admin.Email, model.ErrDuplicate)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}
