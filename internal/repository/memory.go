package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"estate/internal/model"
	"estate/internal/search"
)

// MemoryRepository keeps everything in process memory. It backs local
// development without a database and serves as the store in tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	properties  map[string]model.Property
	locations   map[string]model.Location
	inquiries   map[string]model.Inquiry
	admins      map[string]model.Admin
	contact     *model.ContactSettings
	nextAdminID int64

	// now is replaceable so tests can control created_at ordering
	now func() time.Time
}

// NewMemoryRepository creates an empty in-memory store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		properties: make(map[string]model.Property),
		locations:  make(map[string]model.Location),
		inquiries:  make(map[string]model.Inquiry),
		admins:     make(map[string]model.Admin),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source
func (m *MemoryRepository) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryRepository) Ping(ctx context.Context) error    { return ctx.Err() }
func (m *MemoryRepository) Migrate(ctx context.Context) error { return ctx.Err() }
func (m *MemoryRepository) Close() error                      { return nil }

// FindProperties evaluates the query with the same semantics as the SQL backend
func (m *MemoryRepository) FindProperties(ctx context.Context, q search.Query) ([]model.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	all := make([]model.Property, 0, len(m.properties))
	for _, p := range m.properties {
		all = append(all, cloneProperty(p))
	}
	m.mu.RUnlock()

	return search.Apply(all, q), nil
}

func (m *MemoryRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.properties[id]
	if !ok {
		return nil, nil
	}
	p = cloneProperty(p)
	return &p, nil
}

func (m *MemoryRepository) CreateProperty(ctx context.Context, p *model.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Features == nil {
		p.Features = pq.StringArray{}
	}
	if p.Amenities == nil {
		p.Amenities = pq.StringArray{}
	}
	m.properties[p.ID] = cloneProperty(*p)
	return nil
}

func (m *MemoryRepository) UpdateProperty(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	patch.Apply(&p)
	p.UpdatedAt = m.now()
	p = cloneProperty(p)
	m.properties[id] = p

	out := cloneProperty(p)
	return &out, nil
}

func (m *MemoryRepository) DeleteProperty(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.properties, id)

	// ON DELETE SET NULL
	for key, inq := range m.inquiries {
		if inq.PropertyID != nil && *inq.PropertyID == id {
			inq.PropertyID = nil
			m.inquiries[key] = inq
		}
	}
	return nil
}

func (m *MemoryRepository) ListLocations(ctx context.Context, activeOnly bool) ([]model.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Location, 0, len(m.locations))
	for _, loc := range m.locations {
		if activeOnly && !loc.IsActive {
			continue
		}
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[id]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (m *MemoryRepository) CreateLocation(ctx context.Context, loc *model.Location) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	loc.ID = uuid.NewString()
	loc.CreatedAt = now
	loc.UpdatedAt = now
	m.locations[loc.ID] = *loc
	return nil
}

func (m *MemoryRepository) UpdateLocation(ctx context.Context, id string, patch model.LocationPatch) (*model.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	loc, ok := m.locations[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	patch.Apply(&loc)
	loc.UpdatedAt = m.now()
	m.locations[id] = loc
	return &loc, nil
}

func (m *MemoryRepository) DeleteLocation(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.locations[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.locations, id)
	return nil
}

func (m *MemoryRepository) CreateInquiry(ctx context.Context, inq *model.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if inq.PropertyID != nil {
		if _, ok := m.properties[*inq.PropertyID]; !ok {
			return model.ErrInvalidReference
		}
	}
	inq.ID = uuid.NewString()
	inq.CreatedAt = m.now()
	if inq.Status == "" {
		inq.Status = model.InquiryStatusNew
	}
	m.inquiries[inq.ID] = *inq
	return nil
}

func (m *MemoryRepository) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Inquiry, 0, len(m.inquiries))
	for _, inq := range m.inquiries {
		out = append(out, inq)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) GetInquiry(ctx context.Context, id string) (*model.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	inq, ok := m.inquiries[id]
	if !ok {
		return nil, nil
	}
	return &inq, nil
}

func (m *MemoryRepository) UpdateInquiryStatus(ctx context.Context, id, status string) (*model.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	inq, ok := m.inquiries[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	inq.Status = status
	m.inquiries[id] = inq
	return &inq, nil
}

func (m *MemoryRepository) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	admin, ok := m.admins[adminKey(email)]
	if !ok {
		return nil, nil
	}
	return &admin, nil
}

func (m *MemoryRepository) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := adminKey(admin.Email)
	if _, ok := m.admins[key]; ok {
		return model.ErrDuplicate
	}
	m.nextAdminID++
	admin.ID = m.nextAdminID
	admin.Email = strings.TrimSpace(admin.Email)
	admin.CreatedAt = m.now()
	m.admins[key] = *admin
	return nil
}

func (m *MemoryRepository) GetContactSettings(ctx context.Context) (*model.ContactSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.contact == nil {
		return nil, nil
	}
	settings := *m.contact
	return &settings, nil
}

func (m *MemoryRepository) UpsertContactSettings(ctx context.Context, in model.ContactSettingsInput) (*model.ContactSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if m.contact == nil {
		m.contact = &model.ContactSettings{ID: uuid.NewString(), CreatedAt: now}
	}
	in.Apply(m.contact)
	m.contact.UpdatedAt = now
	settings := *m.contact
	return &settings, nil
}

func adminKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// cloneProperty copies the slice fields so callers cannot mutate stored rows
func cloneProperty(p model.Property) model.Property {
	p.Images = append(pq.StringArray(nil), p.Images...)
	p.Features = append(pq.StringArray{}, p.Features...)
	p.Amenities = append(pq.StringArray{}, p.Amenities...)
	return p
}
