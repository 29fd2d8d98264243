package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"estate/internal/cache"
	"estate/internal/model"
	"estate/internal/repository"
	"estate/internal/search"
)

var errStoreDown = errors.New("connection refused")

type tick struct{ t time.Time }

func (c *tick) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestRepo() *repository.MemoryRepository {
	repo := repository.NewMemoryRepository()
	clock := &tick{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	repo.SetClock(clock.now)
	return repo
}

func newTestSearch(repo PropertyStore, c cache.Cache) *SearchService {
	return NewSearchService(repo, search.NewBuilder(search.LocationSubstring), c, DefaultSearchOptions(), zerolog.Nop())
}

// addProperty stores p with a default image and price type
func addProperty(t *testing.T, repo *repository.MemoryRepository, p model.Property) model.Property {
	t.Helper()
	if p.Images == nil {
		p.Images = []string{"cover.jpg"}
	}
	if p.PriceType == "" {
		p.PriceType = model.PriceTypeSale
	}
	if err := repo.CreateProperty(context.Background(), &p); err != nil {
		t.Fatalf("CreateProperty() error = %v", err)
	}
	return p
}

func ids(properties []model.Property) []string {
	out := make([]string, len(properties))
	for i, p := range properties {
		out[i] = p.ID
	}
	return out
}

func titles(properties []model.Property) []string {
	out := make([]string, len(properties))
	for i, p := range properties {
		out[i] = p.Title
	}
	return out
}

func containsID(properties []model.Property, id string) bool {
	for _, p := range properties {
		if p.ID == id {
			return true
		}
	}
	return false
}

func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }
func boolPtr(v bool) *bool          { return &v }

// failingStore serves reads from memory but fails every property query
type failingStore struct {
	*repository.MemoryRepository
}

func (f failingStore) FindProperties(context.Context, search.Query) ([]model.Property, error) {
	return nil, errStoreDown
}

// countingCache records how often the store was bypassed
type countingCache struct {
	cache.Cache
	hits int
}

func (c *countingCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ok, err := c.Cache.Get(ctx, key, dest)
	if ok {
		c.hits++
	}
	return ok, err
}

// brokenCache fails every operation
type brokenCache struct{}

func (brokenCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("redis: connection pool timeout")
}
func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("redis: connection pool timeout")
}
func (brokenCache) InvalidatePrefix(context.Context, string) error {
	return errors.New("redis: connection pool timeout")
}
