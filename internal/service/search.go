package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"estate/internal/cache"
	"estate/internal/model"
	"estate/internal/search"
)

// PropertiesCachePrefix namespaces cached public property results
const PropertiesCachePrefix = "properties"

// PropertyStore is the storage the search service needs
type PropertyStore interface {
	FindProperties(ctx context.Context, q search.Query) ([]model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	CreateProperty(ctx context.Context, p *model.Property) error
	UpdateProperty(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

// SearchOptions tunes the search entry points
type SearchOptions struct {
	FeaturedLimit    int
	RelatedLimit     int
	RelatedTolerance float64
	CacheTTL         time.Duration
}

// DefaultSearchOptions matches the public site
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		FeaturedLimit:    6,
		RelatedLimit:     6,
		RelatedTolerance: 0.2,
		CacheTTL:         time.Minute,
	}
}

// SearchService handles property search and property management
type SearchService struct {
	repo    PropertyStore
	builder *search.Builder
	cache   cache.Cache
	opts    SearchOptions
	log     zerolog.Logger

	// generation counts invalidations; a result read before the latest one
	// is not cached
	mu         sync.RWMutex
	generation uint64
}

// NewSearchService creates a new search service
func NewSearchService(
	repo PropertyStore,
	builder *search.Builder,
	resultCache cache.Cache,
	opts SearchOptions,
	log zerolog.Logger,
) *SearchService {
	if resultCache == nil {
		resultCache = cache.Nop{}
	}
	return &SearchService{
		repo:    repo,
		builder: builder,
		cache:   resultCache,
		opts:    opts,
		log:     log.With().Str("component", "search").Logger(),
	}
}

// Search runs a public search: active listings matching every filter,
// newest first. An empty result is not an error.
func (s *SearchService) Search(ctx context.Context, f search.Filter) (*model.PropertyListResponse, error) {
	startTime := time.Now()
	s.logIgnored(f)

	params := f.Params()
	params["scope"] = "public"
	key := cache.GenerateQueryCacheKey(PropertiesCachePrefix, params)

	var properties []model.Property
	if !s.cached(ctx, key, &properties) {
		gen := s.currentGeneration()
		preds := s.builder.Build(f, search.Public)
		s.log.Debug().Str("where", search.Describe(preds)).Msg("searching properties")

		var err error
		properties, err = s.repo.FindProperties(ctx, search.Query{Where: preds})
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, gen, properties)
	}

	return &model.PropertyListResponse{
		Results: properties,
		Total:   len(properties),
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// AdminSearch runs the same filters without the visibility rule. Admin
// results are never cached.
func (s *SearchService) AdminSearch(ctx context.Context, f search.Filter) (*model.PropertyListResponse, error) {
	startTime := time.Now()
	s.logIgnored(f)

	properties, err := s.repo.FindProperties(ctx, search.Query{Where: s.builder.Build(f, search.Admin)})
	if err != nil {
		return nil, err
	}

	return &model.PropertyListResponse{
		Results: properties,
		Total:   len(properties),
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// Featured returns the newest active featured listings
func (s *SearchService) Featured(ctx context.Context) ([]model.Property, error) {
	key := cache.GenerateQueryCacheKey(PropertiesCachePrefix, map[string]string{
		"featured": "true",
		"limit":    strconv.Itoa(s.opts.FeaturedLimit),
	})

	var properties []model.Property
	if s.cached(ctx, key, &properties) {
		return properties, nil
	}

	gen := s.currentGeneration()
	properties, err := s.repo.FindProperties(ctx, search.Query{
		Where: []search.Predicate{search.Active(), search.Eq(search.FieldIsFeatured, true)},
		Limit: s.opts.FeaturedLimit,
	})
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, gen, properties)
	return properties, nil
}

// GetProperty returns an active property, or nil if it is missing or hidden
func (s *SearchService) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, nil
	}
	return p, nil
}

// CreateProperty stores a new listing
func (s *SearchService) CreateProperty(ctx context.Context, in model.PropertyInput) (*model.Property, error) {
	p := in.ToProperty()
	if err := s.repo.CreateProperty(ctx, &p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info().Str("property_id", p.ID).Msg("property created")
	return &p, nil
}

// UpdateProperty applies a partial update
func (s *SearchService) UpdateProperty(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
	p, err := s.repo.UpdateProperty(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

// DeleteProperty removes a listing
func (s *SearchService) DeleteProperty(ctx context.Context, id string) error {
	if err := s.repo.DeleteProperty(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("property_id", id).Msg("property deleted")
	return nil
}

func (s *SearchService) logIgnored(f search.Filter) {
	if len(f.Ignored) > 0 {
		s.log.Debug().Strs("ignored", f.Ignored).Msg("dropped malformed filter values")
	}
}

// cached reads key into dest. Cache failures count as a miss.
func (s *SearchService) cached(ctx context.Context, key string, dest interface{}) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	return ok
}

func (s *SearchService) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// store caches value unless the cache was invalidated after gen was read
func (s *SearchService) store(ctx context.Context, key string, gen uint64, value interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if gen != s.generation {
		s.log.Debug().Str("key", key).Msg("result outdated by a concurrent update, not cached")
		return
	}
	if err := s.cache.Set(ctx, key, value, s.opts.CacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *SearchService) invalidate(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()

	if err := s.cache.InvalidatePrefix(ctx, PropertiesCachePrefix); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}
