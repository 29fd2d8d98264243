package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"estate/internal/model"
)

func newTestManager(now *time.Time) (*Manager, *MemoryStore) {
	store := NewMemoryStore()
	store.now = func() time.Time { return *now }
	m := NewManager("test-secret", time.Hour, store)
	m.SetClock(func() time.Time { return *now })
	return m, store
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m, _ := newTestManager(&now)
	ctx := context.Background()
	admin := &model.Admin{ID: 7, Email: "admin@example.com"}

	token, sess, err := m.Issue(ctx, admin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if sess.AdminID != 7 || !sess.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("Issue() session = %+v", sess)
	}

	got, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.ID != sess.ID || got.Email != admin.Email {
		t.Errorf("Verify() = %+v, want %+v", got, sess)
	}
}

func TestVerifyRejects(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m, _ := newTestManager(&now)
	ctx := context.Background()
	token, _, err := m.Issue(ctx, &model.Admin{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other := NewManager("other-secret", time.Hour, NewMemoryStore())
	forged, _, _ := other.Issue(ctx, &model.Admin{ID: 1, Email: "a@example.com"})

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{ID: "x"}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "garbage", token: "not-a-token", want: model.ErrInvalidSession},
		{name: "wrong secret", token: forged, want: model.ErrInvalidSession},
		{name: "alg none", token: unsigned, want: model.ErrInvalidSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(ctx, tt.token); !errors.Is(err, tt.want) {
				t.Errorf("Verify() error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("expired", func(t *testing.T) {
		now = now.Add(2 * time.Hour)
		defer func() { now = now.Add(-2 * time.Hour) }()
		if _, err := m.Verify(ctx, token); !errors.Is(err, model.ErrSessionExpired) {
			t.Errorf("Verify() error = %v, want ErrSessionExpired", err)
		}
	})
}

func TestInvalidate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m, store := newTestManager(&now)
	ctx := context.Background()

	token, sess, err := m.Issue(ctx, &model.Admin{ID: 3, Email: "b@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if err := m.Invalidate(ctx, token); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if s, _ := store.Load(ctx, sess.ID); s != nil {
		t.Errorf("session still stored after Invalidate")
	}
	if _, err := m.Verify(ctx, token); !errors.Is(err, model.ErrInvalidSession) {
		t.Errorf("Verify() after logout error = %v, want ErrInvalidSession", err)
	}
	if err := m.Invalidate(ctx, "junk"); !errors.Is(err, model.ErrInvalidSession) {
		t.Errorf("Invalidate(junk) error = %v, want ErrInvalidSession", err)
	}
}

func TestMemoryStoreSweepsExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Save(ctx, Session{ID: "old", ExpiresAt: now.Add(time.Minute)})
	now = now.Add(time.Hour)
	_ = store.Save(ctx, Session{ID: "new", ExpiresAt: now.Add(time.Minute)})

	if s, _ := store.Load(ctx, "old"); s != nil {
		t.Errorf("expired session kept")
	}
	if s, _ := store.Load(ctx, "new"); s == nil {
		t.Errorf("live session dropped")
	}
}
