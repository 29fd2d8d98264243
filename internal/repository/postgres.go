package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository. Every call made
// through it is bounded by queryTimeout.
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int, queryTimeout time.Duration) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute) // Shorter lifetime to avoid stale connections
	db.SetConnMaxIdleTime(2 * time.Minute) // Close idle connections sooner

	repo := &PostgresRepository{db: db, queryTimeout: queryTimeout}

	// Test connection
	if err := repo.Ping(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks that the database is reachable
func (r *PostgresRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func (r *PostgresRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Migrate creates the schema if it does not exist yet
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id         BIGSERIAL PRIMARY KEY,
		email      TEXT NOT NULL,
		password   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS admins_email_lower_idx ON admins (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS locations (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		city        TEXT NOT NULL,
		governorate TEXT NOT NULL,
		image_url   TEXT,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id            UUID PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT,
		location      TEXT NOT NULL,
		governorate   TEXT,
		city          TEXT,
		price         NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
		price_type    TEXT NOT NULL DEFAULT 'for sale',
		property_type TEXT NOT NULL,
		bedrooms      INTEGER,
		bathrooms     INTEGER,
		area          NUMERIC(8, 2),
		parking       INTEGER,
		images        TEXT[] NOT NULL,
		features      TEXT[] NOT NULL DEFAULT '{}',
		amenities     TEXT[] NOT NULL DEFAULT '{}',
		agent_name    TEXT,
		agent_phone   TEXT,
		agent_email   TEXT,
		agent_image   TEXT,
		is_featured   BOOLEAN NOT NULL DEFAULT FALSE,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		special_type  TEXT,
		floor_number  TEXT,
		build_year    INTEGER,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS properties_created_at_idx ON properties (created_at DESC, id)`,
	`CREATE INDEX IF NOT EXISTS properties_active_featured_idx ON properties (is_active, is_featured)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id           UUID PRIMARY KEY,
		name         TEXT NOT NULL,
		email        TEXT,
		phone        TEXT,
		message      TEXT NOT NULL,
		property_id  UUID REFERENCES properties (id) ON DELETE SET NULL,
		inquiry_type TEXT,
		status       TEXT NOT NULL DEFAULT 'new',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contact_settings (
		id              UUID PRIMARY KEY,
		phone           TEXT,
		email           TEXT,
		facebook_url    TEXT,
		instagram_url   TEXT,
		twitter_url     TEXT,
		linkedin_url    TEXT,
		youtube_url     TEXT,
		whatsapp_number TEXT,
		address         TEXT,
		company_name    TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// at most one settings row
	`CREATE UNIQUE INDEX IF NOT EXISTS contact_settings_singleton_idx ON contact_settings ((TRUE))`,
}

// isForeignKeyViolation reports a PostgreSQL foreign key failure (23503)
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// isUniqueViolation reports a PostgreSQL unique constraint failure (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
