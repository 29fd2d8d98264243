package service

import (
	"context"
	"errors"
	"testing"

	"estate/internal/model"
)

func TestRelatedScenario(t *testing.T) {
	repo := newTestRepo()
	a := addProperty(t, repo, model.Property{Title: "A", Price: 1000000, Area: float64Ptr(100), Governorate: strPtr("Giza"), City: strPtr("Giza"), IsActive: true})
	b := addProperty(t, repo, model.Property{Title: "B", Price: 1150000, Area: float64Ptr(110), Governorate: strPtr("Giza"), City: strPtr("Giza"), IsActive: true})
	c := addProperty(t, repo, model.Property{Title: "C", Price: 5000000, Area: float64Ptr(100), Governorate: strPtr("Cairo"), City: strPtr("Cairo"), IsActive: true})

	got, err := newTestSearch(repo, nil).Related(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}

	if !containsID(got.Nearby, b.ID) || containsID(got.Nearby, c.ID) {
		t.Errorf("Nearby = %v, want B and not C", titles(got.Nearby))
	}
	if !containsID(got.SimilarPrice, b.ID) || containsID(got.SimilarPrice, c.ID) {
		t.Errorf("SimilarPrice = %v, want B and not C", titles(got.SimilarPrice))
	}
	// area 100 and 110 are both within 20% of 100
	if !containsID(got.SimilarArea, b.ID) || !containsID(got.SimilarArea, c.ID) {
		t.Errorf("SimilarArea = %v, want B and C", titles(got.SimilarArea))
	}
	for name, bucket := range map[string][]model.Property{"nearby": got.Nearby, "price": got.SimilarPrice, "area": got.SimilarArea} {
		if containsID(bucket, a.ID) {
			t.Errorf("%s bucket contains the reference property", name)
		}
	}
}

func TestRelatedBoundsInclusive(t *testing.T) {
	repo := newTestRepo()
	ref := addProperty(t, repo, model.Property{Title: "ref", Price: 1000, IsActive: true})
	low := addProperty(t, repo, model.Property{Title: "low", Price: 800, IsActive: true})
	high := addProperty(t, repo, model.Property{Title: "high", Price: 1200, IsActive: true})
	addProperty(t, repo, model.Property{Title: "too low", Price: 799, IsActive: true})
	addProperty(t, repo, model.Property{Title: "too high", Price: 1201, IsActive: true})
	addProperty(t, repo, model.Property{Title: "hidden", Price: 1000, IsActive: false})

	got, err := newTestSearch(repo, nil).Related(context.Background(), ref.ID)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(got.SimilarPrice) != 2 || got.SimilarPrice[0].ID != high.ID || got.SimilarPrice[1].ID != low.ID {
		t.Errorf("SimilarPrice = %v, want [high low]", titles(got.SimilarPrice))
	}
}

func TestRelatedBoundsInclusiveForUnevenValues(t *testing.T) {
	repo := newTestRepo()
	ref := addProperty(t, repo, model.Property{Title: "ref", Price: 3, Area: float64Ptr(87), IsActive: true})
	smallest := addProperty(t, repo, model.Property{Title: "smallest", Price: 50, Area: float64Ptr(69.6), IsActive: true})
	largest := addProperty(t, repo, model.Property{Title: "largest", Price: 50, Area: float64Ptr(104.4), IsActive: true})
	addProperty(t, repo, model.Property{Title: "too large", Price: 50, Area: float64Ptr(104.41), IsActive: true})
	cheapest := addProperty(t, repo, model.Property{Title: "cheapest", Price: 2.4, IsActive: true})
	dearest := addProperty(t, repo, model.Property{Title: "dearest", Price: 3.6, IsActive: true})

	got, err := newTestSearch(repo, nil).Related(context.Background(), ref.ID)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}

	if len(got.SimilarArea) != 2 || !containsID(got.SimilarArea, smallest.ID) || !containsID(got.SimilarArea, largest.ID) {
		t.Errorf("SimilarArea = %v, want [largest smallest]", titles(got.SimilarArea))
	}
	if len(got.SimilarPrice) != 2 || !containsID(got.SimilarPrice, cheapest.ID) || !containsID(got.SimilarPrice, dearest.ID) {
		t.Errorf("SimilarPrice = %v, want [dearest cheapest]", titles(got.SimilarPrice))
	}
}

func TestRoundBound(t *testing.T) {
	tests := []struct {
		value  float64
		factor float64
		want   float64
	}{
		{87, 1.2, 104.4},
		{87, 0.8, 69.6},
		{3, 1.2, 3.6},
		{1000, 1.2, 1200},
		{12500000.5, 0.8, 10000000.4},
	}

	for _, tt := range tests {
		if got := roundBound(tt.value * tt.factor); got != tt.want {
			t.Errorf("roundBound(%v * %v) = %v, want %v", tt.value, tt.factor, got, tt.want)
		}
	}
}

func TestRelatedWithoutAreaOrCity(t *testing.T) {
	repo := newTestRepo()
	ref := addProperty(t, repo, model.Property{Title: "ref", Price: 500, Governorate: strPtr("Cairo"), City: strPtr("Maadi"), IsActive: true})
	addProperty(t, repo, model.Property{Title: "neighbour", Price: 520, Area: float64Ptr(90), Governorate: strPtr("Cairo"), City: strPtr("Maadi"), IsActive: true})

	got, err := newTestSearch(repo, nil).Related(context.Background(), ref.ID)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(got.SimilarArea) != 0 {
		t.Errorf("SimilarArea = %v, want empty for a reference without area", titles(got.SimilarArea))
	}
	if len(got.Nearby) != 1 || len(got.SimilarPrice) != 1 {
		t.Errorf("Nearby = %v, SimilarPrice = %v; want the neighbour in both", titles(got.Nearby), titles(got.SimilarPrice))
	}

	noCity := addProperty(t, repo, model.Property{Title: "no city", Price: 500, Governorate: strPtr("Cairo"), IsActive: true})
	got, err = newTestSearch(repo, nil).Related(context.Background(), noCity.ID)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(got.Nearby) != 0 {
		t.Errorf("Nearby = %v, want empty without a city", titles(got.Nearby))
	}
}

func TestRelatedCapsBuckets(t *testing.T) {
	repo := newTestRepo()
	ref := addProperty(t, repo, model.Property{Title: "ref", Price: 100, IsActive: true})
	for i := 0; i < 9; i++ {
		addProperty(t, repo, model.Property{Title: "same", Price: 100, IsActive: true})
	}

	got, err := newTestSearch(repo, nil).Related(context.Background(), ref.ID)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(got.SimilarPrice) != 6 {
		t.Errorf("SimilarPrice has %d rows, want 6", len(got.SimilarPrice))
	}
}

func TestRelatedMissingReference(t *testing.T) {
	got, err := newTestSearch(newTestRepo(), nil).Related(context.Background(), "gone")
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if got.Nearby == nil || got.SimilarPrice == nil || got.SimilarArea == nil {
		t.Fatalf("Related() buckets must be empty slices, got %+v", got)
	}
	if len(got.Nearby)+len(got.SimilarPrice)+len(got.SimilarArea) != 0 {
		t.Errorf("Related() = %+v, want three empty buckets", got)
	}
}

func TestRelatedStorageFailure(t *testing.T) {
	repo := newTestRepo()
	ref := addProperty(t, repo, model.Property{Title: "ref", Price: 100, IsActive: true})

	got, err := newTestSearch(failingStore{repo}, nil).Related(context.Background(), ref.ID)
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("Related() error = %v, want store failure", err)
	}
	if got != nil {
		t.Errorf("Related() = %+v alongside an error", got)
	}
}
