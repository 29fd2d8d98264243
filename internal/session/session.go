package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"estate/internal/model"
)

// Session is a logged-in admin
type Session struct {
	ID        string    `json:"id"`
	AdminID   int64     `json:"admin_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions until they expire or are invalidated
type Store interface {
	Save(ctx context.Context, s Session) error
	// Load returns nil, nil when the session does not exist
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Claims is the token payload; the JWT ID is the session ID
type Claims struct {
	AdminID int64  `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies admin session tokens
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

// NewManager creates a manager. An empty secret is replaced by a random one,
// which means sessions do not survive a restart.
func NewManager(secret string, ttl time.Duration, store Store) *Manager {
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
}

// SetClock overrides the time source
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Issue starts a session for admin and returns its signed token
func (m *Manager) Issue(ctx context.Context, admin *model.Admin) (string, *Session, error) {
	now := m.now().UTC()
	s := Session{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		Email:     admin.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := Claims{
		AdminID: s.AdminID,
		Email:   s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   fmt.Sprint(s.AdminID),
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("failed to save session: %w", err)
	}
	return token, &s, nil
}

// Verify checks the token signature, its expiry and that the session was
// not invalidated.
func (m *Manager) Verify(ctx context.Context, token string) (*Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	s, err := m.store.Load(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s == nil {
		return nil, model.ErrInvalidSession
	}
	if !m.now().Before(s.ExpiresAt) {
		return nil, model.ErrSessionExpired
	}
	return s, nil
}

// Invalidate ends the session behind token. Tokens that already expired
// are accepted so a stale admin UI can always log out.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, m.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || claims.ID == "" {
		return model.ErrInvalidSession
	}
	if err := m.store.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (m *Manager) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, m.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrSessionExpired
		}
		return nil, model.ErrInvalidSession
	}
	if claims.ID == "" {
		return nil, model.ErrInvalidSession
	}
	return claims, nil
}

func (m *Manager) key(*jwt.Token) (interface{}, error) {
	return m.secret, nil
}
