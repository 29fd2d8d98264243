package repository

import (
	"context"

	"estate/internal/model"
	"estate/internal/search"
)

// Store is the method set shared by the PostgreSQL and in-memory backends
type Store interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error

	FindProperties(ctx context.Context, q search.Query) ([]model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	CreateProperty(ctx context.Context, p *model.Property) error
	UpdateProperty(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error)
	DeleteProperty(ctx context.Context, id string) error

	ListLocations(ctx context.Context, activeOnly bool) ([]model.Location, error)
	GetLocation(ctx context.Context, id string) (*model.Location, error)
	CreateLocation(ctx context.Context, loc *model.Location) error
	UpdateLocation(ctx context.Context, id string, patch model.LocationPatch) (*model.Location, error)
	DeleteLocation(ctx context.Context, id string) error

	CreateInquiry(ctx context.Context, inq *model.Inquiry) error
	ListInquiries(ctx context.Context) ([]model.Inquiry, error)
	GetInquiry(ctx context.Context, id string) (*model.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id, status string) (*model.Inquiry, error)

	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error

	GetContactSettings(ctx context.Context) (*model.ContactSettings, error)
	UpsertContactSettings(ctx context.Context, in model.ContactSettingsInput) (*model.ContactSettings, error)
}

var (
	_ Store = (*PostgresRepository)(nil)
	_ Store = (*MemoryRepository)(nil)
)
