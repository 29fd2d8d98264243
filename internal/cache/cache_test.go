package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestGenerateQueryCacheKey(t *testing.T) {
	a := GenerateQueryCacheKey("properties", map[string]string{"location": "Maadi", "bedrooms": "3"})
	b := GenerateQueryCacheKey("properties", map[string]string{"bedrooms": "3", "location": "Maadi"})
	c := GenerateQueryCacheKey("properties", map[string]string{"bedrooms": "4", "location": "Maadi"})

	if a != b {
		t.Errorf("key depends on param order: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different params produced the same key %s", a)
	}
	if !strings.HasPrefix(a, "properties:") {
		t.Errorf("key %s lacks prefix", a)
	}
	if empty := GenerateQueryCacheKey("featured", nil); !strings.HasPrefix(empty, "featured:") {
		t.Errorf("empty params key = %s", empty)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "properties:a", []string{"x"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	_ = m.Set(ctx, "locations:a", 1, 0)

	var got []string
	ok, err := m.Get(ctx, "properties:a", &got)
	if err != nil || !ok || len(got) != 1 || got[0] != "x" {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := m.Get(ctx, "properties:a", &got); ok {
		t.Errorf("expired entry returned")
	}

	_ = m.Set(ctx, "properties:b", 1, time.Minute)
	if err := m.InvalidatePrefix(ctx, "properties"); err != nil {
		t.Fatalf("InvalidatePrefix() error = %v", err)
	}
	var n int
	if ok, _ := m.Get(ctx, "properties:b", &n); ok {
		t.Errorf("entry survived invalidation")
	}
	if ok, _ := m.Get(ctx, "locations:a", &n); !ok {
		t.Errorf("unrelated prefix was invalidated")
	}
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	_ = c.Set(context.Background(), "k", 1, time.Minute)
	var n int
	if ok, err := c.Get(context.Background(), "k", &n); ok || err != nil {
		t.Errorf("Nop.Get() = %v, %v", ok, err)
	}
}
