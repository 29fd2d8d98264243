package service

import (
	"context"

	"estate/internal/model"
)

// ContactStore is the storage the contact service needs
type ContactStore interface {
	GetContactSettings(ctx context.Context) (*model.ContactSettings, error)
	UpsertContactSettings(ctx context.Context, in model.ContactSettingsInput) (*model.ContactSettings, error)
}

// ContactService reads and updates the company contact details
type ContactService struct {
	repo ContactStore
}

func NewContactService(repo ContactStore) *ContactService {
	return &ContactService{repo: repo}
}

// Get returns the saved settings, or nil if none were saved yet
func (s *ContactService) Get(ctx context.Context) (*model.ContactSettings, error) {
	return s.repo.GetContactSettings(ctx)
}

func (s *ContactService) Update(ctx context.Context, in model.ContactSettingsInput) (*model.ContactSettings, error) {
	return s.repo.UpsertContactSettings(ctx, in)
}
