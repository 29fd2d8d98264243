package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"estate/internal/model"
	"estate/internal/session"
)

// AdminStore is the storage the admin service needs
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
}

// AdminService handles admin login and sessions
type AdminService struct {
	repo     AdminStore
	sessions *session.Manager
	cost     int
	log      zerolog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(repo AdminStore, sessions *session.Manager, log zerolog.Logger) *AdminService {
	return &AdminService{
		repo:     repo,
		sessions: sessions,
		cost:     bcrypt.DefaultCost,
		log:      log.With().Str("component", "admin").Logger(),
	}
}

// Login checks the credentials and starts a session
func (s *AdminService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		s.log.Info().Str("email", email).Msg("login for unknown admin")
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		s.log.Info().Int64("admin_id", admin.ID).Msg("login with wrong password")
		return nil, model.ErrInvalidCredentials
	}

	token, sess, err := s.sessions.Issue(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("admin_id", admin.ID).Str("session_id", sess.ID).Msg("admin logged in")
	return &model.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Admin:     admin,
	}, nil
}

// Logout ends the session behind token
func (s *AdminService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

// Authenticate resolves a token into its live session
func (s *AdminService) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	return s.sessions.Verify(ctx, token)
}

// CreateAdmin hashes password and stores a new admin account
func (s *AdminService) CreateAdmin(ctx context.Context, email, password string) (*model.Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{Email: email, Password: string(hashed)}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
