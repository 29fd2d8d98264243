package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"estate/internal/cache"
	"estate/internal/model"
	"estate/internal/repository"
	"estate/internal/search"
)

func TestSearchVillaForSale(t *testing.T) {
	repo := newTestRepo()
	sale := addProperty(t, repo, model.Property{Title: "villa sale", PropertyType: "villa", PriceType: model.PriceTypeSale, Bedrooms: intPtr(3), IsActive: true})
	addProperty(t, repo, model.Property{Title: "villa rent", PropertyType: "villa", PriceType: model.PriceTypeRent, Bedrooms: intPtr(3), IsActive: true})

	svc := newTestSearch(repo, nil)
	raw := search.RawFilter{PropertyType: "villa", PriceType: "for sale", Bedrooms: "3"}
	resp, err := svc.Search(context.Background(), raw.Normalize())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !reflect.DeepEqual(ids(resp.Results), []string{sale.ID}) {
		t.Errorf("Search() = %v, want only the villa for sale", titles(resp.Results))
	}
	if resp.Total != 1 {
		t.Errorf("Total = %d, want 1", resp.Total)
	}
}

func TestSearchFilters(t *testing.T) {
	repo := newTestRepo()
	addProperty(t, repo, model.Property{Title: "cheap", Location: "Nasr City", Price: 50, Bedrooms: intPtr(4), IsActive: true})
	addProperty(t, repo, model.Property{Title: "mid", Location: "Maadi", Price: 150, Bedrooms: intPtr(5), IsActive: true})
	addProperty(t, repo, model.Property{Title: "big", Location: "New Cairo", Price: 300, Bedrooms: intPtr(7), IsActive: true})
	addProperty(t, repo, model.Property{Title: "hidden", Location: "Maadi", Price: 150, Bedrooms: intPtr(5), IsActive: false})
	addProperty(t, repo, model.Property{Title: "unknown rooms", Location: "Maadi", Price: 150, IsActive: true})

	svc := newTestSearch(repo, nil)

	tests := []struct {
		name string
		raw  search.RawFilter
		want []string
	}{
		{name: "no filters returns every active listing newest first", raw: search.RawFilter{}, want: []string{"unknown rooms", "big", "mid", "cheap"}},
		{name: "all sentinel", raw: search.RawFilter{Location: "all", PropertyType: "ALL"}, want: []string{"unknown rooms", "big", "mid", "cheap"}},
		{name: "price range inclusive", raw: search.RawFilter{PriceMin: "150", PriceMax: "300"}, want: []string{"unknown rooms", "big", "mid"}},
		{name: "min above max is empty", raw: search.RawFilter{PriceMin: "300", PriceMax: "50"}, want: []string{}},
		{name: "open-ended bedrooms", raw: search.RawFilter{Bedrooms: "5+"}, want: []string{"big", "mid"}},
		{name: "exact bedrooms", raw: search.RawFilter{Bedrooms: "4"}, want: []string{"cheap"}},
		{name: "location substring", raw: search.RawFilter{Location: "nasr"}, want: []string{"cheap"}},
		{name: "malformed values dropped", raw: search.RawFilter{PriceMin: "cheap", Bedrooms: "lots"}, want: []string{"unknown rooms", "big", "mid", "cheap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Search(context.Background(), tt.raw.Normalize())
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if got := titles(resp.Results); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdminSearchSeesInactive(t *testing.T) {
	repo := newTestRepo()
	addProperty(t, repo, model.Property{Title: "live", IsActive: true})
	addProperty(t, repo, model.Property{Title: "draft", IsActive: false})

	resp, err := newTestSearch(repo, nil).AdminSearch(context.Background(), search.Filter{})
	if err != nil {
		t.Fatalf("AdminSearch() error = %v", err)
	}
	if got := titles(resp.Results); !reflect.DeepEqual(got, []string{"draft", "live"}) {
		t.Errorf("AdminSearch() = %v", got)
	}
}

func TestFeatured(t *testing.T) {
	repo := newTestRepo()
	var want []string
	for i := 0; i < 8; i++ {
		p := addProperty(t, repo, model.Property{Title: "featured", IsFeatured: true, IsActive: true})
		want = append([]string{p.ID}, want...)
	}
	addProperty(t, repo, model.Property{Title: "featured but hidden", IsFeatured: true, IsActive: false})
	addProperty(t, repo, model.Property{Title: "plain", IsActive: true})

	got, err := newTestSearch(repo, nil).Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured() error = %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("Featured() returned %d rows, want 6", len(got))
	}
	if !reflect.DeepEqual(ids(got), want[:6]) {
		t.Errorf("Featured() not the six newest featured listings")
	}
	for _, p := range got {
		if !p.IsFeatured || !p.IsActive {
			t.Errorf("Featured() returned %q (featured=%v active=%v)", p.Title, p.IsFeatured, p.IsActive)
		}
	}
}

func TestSearchStorageFailureIsAnError(t *testing.T) {
	svc := newTestSearch(failingStore{newTestRepo()}, nil)

	resp, err := svc.Search(context.Background(), search.Filter{})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("Search() error = %v, want store failure", err)
	}
	if resp != nil {
		t.Errorf("Search() returned a result alongside the failure: %+v", resp)
	}
	if _, err := svc.Featured(context.Background()); !errors.Is(err, errStoreDown) {
		t.Errorf("Featured() error = %v, want store failure", err)
	}
}

func TestSearchCache(t *testing.T) {
	repo := newTestRepo()
	addProperty(t, repo, model.Property{Title: "first", IsActive: true})

	c := &countingCache{Cache: cache.NewMemory()}
	svc := newTestSearch(repo, c)
	ctx := context.Background()

	if _, err := svc.Search(ctx, search.Filter{}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	resp, err := svc.Search(ctx, search.Filter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if c.hits != 1 || len(resp.Results) != 1 {
		t.Fatalf("second search: hits = %d, results = %d; want cached single result", c.hits, len(resp.Results))
	}

	if _, err := svc.CreateProperty(ctx, model.PropertyInput{Title: "second", Location: "Zayed", Price: float64Ptr(10), PropertyType: "apartment", Images: []string{"a.jpg"}}); err != nil {
		t.Fatalf("CreateProperty() error = %v", err)
	}
	resp, err = svc.Search(ctx, search.Filter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("after create: %v, want cache invalidated", titles(resp.Results))
	}
}

// racingStore runs afterFind once, between reading rows and returning them
type racingStore struct {
	*repository.MemoryRepository
	afterFind func()
}

func (r *racingStore) FindProperties(ctx context.Context, q search.Query) ([]model.Property, error) {
	properties, err := r.MemoryRepository.FindProperties(ctx, q)
	if hook := r.afterFind; hook != nil {
		r.afterFind = nil
		hook()
	}
	return properties, err
}

func TestSearchDoesNotCacheResultOutdatedDuringQuery(t *testing.T) {
	repo := newTestRepo()
	p := addProperty(t, repo, model.Property{Title: "soon hidden", IsFeatured: true, IsActive: true})
	store := &racingStore{MemoryRepository: repo}
	svc := newTestSearch(store, cache.NewMemory())
	ctx := context.Background()

	hide := func() {
		if _, err := svc.UpdateProperty(ctx, p.ID, model.PropertyPatch{IsActive: boolPtr(false)}); err != nil {
			t.Errorf("UpdateProperty() error = %v", err)
		}
	}

	store.afterFind = hide
	if _, err := svc.Search(ctx, search.Filter{}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	resp, err := svc.Search(ctx, search.Filter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("Search() = %v, want the deactivated listing gone", titles(resp.Results))
	}

	p = addProperty(t, repo, model.Property{Title: "featured then hidden", IsFeatured: true, IsActive: true})
	store.afterFind = hide
	if _, err := svc.Featured(ctx); err != nil {
		t.Fatalf("Featured() error = %v", err)
	}
	featured, err := svc.Featured(ctx)
	if err != nil {
		t.Fatalf("Featured() error = %v", err)
	}
	if len(featured) != 0 {
		t.Errorf("Featured() = %v, want the deactivated listing gone", titles(featured))
	}
}

func TestSearchBypassesBrokenCache(t *testing.T) {
	repo := newTestRepo()
	addProperty(t, repo, model.Property{Title: "only", IsActive: true})
	svc := newTestSearch(repo, brokenCache{})

	resp, err := svc.Search(context.Background(), search.Filter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("Search() = %v, want the stored listing", titles(resp.Results))
	}
	if _, err := svc.UpdateProperty(context.Background(), resp.Results[0].ID, model.PropertyPatch{Title: strPtr("renamed")}); err != nil {
		t.Errorf("UpdateProperty() error = %v, cache failure must not surface", err)
	}
}

func TestGetPropertyHidesInactive(t *testing.T) {
	repo := newTestRepo()
	live := addProperty(t, repo, model.Property{Title: "live", IsActive: true})
	draft := addProperty(t, repo, model.Property{Title: "draft", IsActive: false})
	svc := newTestSearch(repo, nil)
	ctx := context.Background()

	if p, err := svc.GetProperty(ctx, live.ID); err != nil || p == nil {
		t.Errorf("GetProperty(live) = %v, %v", p, err)
	}
	if p, err := svc.GetProperty(ctx, draft.ID); err != nil || p != nil {
		t.Errorf("GetProperty(draft) = %v, %v; want nil, nil", p, err)
	}
	if p, err := svc.GetProperty(ctx, "missing"); err != nil || p != nil {
		t.Errorf("GetProperty(missing) = %v, %v; want nil, nil", p, err)
	}
}

func TestPropertyLifecycle(t *testing.T) {
	repo := newTestRepo()
	svc := newTestSearch(repo, nil)
	ctx := context.Background()

	created, err := svc.CreateProperty(ctx, model.PropertyInput{
		Title: "Sea view", Location: "North Coast", Price: float64Ptr(2500000),
		PropertyType: "chalet", Images: []string{"sea.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateProperty() error = %v", err)
	}
	if !created.IsActive || created.IsFeatured || created.PriceType != model.PriceTypeSale {
		t.Errorf("defaults not applied: %+v", created)
	}

	updated, err := svc.UpdateProperty(ctx, created.ID, model.PropertyPatch{IsFeatured: boolPtr(true)})
	if err != nil || !updated.IsFeatured || updated.Title != "Sea view" {
		t.Errorf("UpdateProperty() = %+v, %v", updated, err)
	}

	if err := svc.DeleteProperty(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProperty() error = %v", err)
	}
	if err := svc.DeleteProperty(ctx, created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("DeleteProperty(deleted) error = %v, want ErrNotFound", err)
	}
}
