package service

import (
	"context"

	"github.com/rs/zerolog"

	"estate/internal/model"
)

// LocationStore is the storage the location service needs
type LocationStore interface {
	ListLocations(ctx context.Context, activeOnly bool) ([]model.Location, error)
	GetLocation(ctx context.Context, id string) (*model.Location, error)
	CreateLocation(ctx context.Context, loc *model.Location) error
	UpdateLocation(ctx context.Context, id string, patch model.LocationPatch) (*model.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

// LocationService manages the locations offered in the search form
type LocationService struct {
	repo LocationStore
	log  zerolog.Logger
}

func NewLocationService(repo LocationStore, log zerolog.Logger) *LocationService {
	return &LocationService{repo: repo, log: log.With().Str("component", "locations").Logger()}
}

// Active lists the locations shown on the public site
func (s *LocationService) Active(ctx context.Context) ([]model.Location, error) {
	return s.repo.ListLocations(ctx, true)
}

// All lists every location for the admin panel
func (s *LocationService) All(ctx context.Context) ([]model.Location, error) {
	return s.repo.ListLocations(ctx, false)
}

func (s *LocationService) Create(ctx context.Context, in model.LocationInput) (*model.Location, error) {
	loc := in.ToLocation()
	if err := s.repo.CreateLocation(ctx, &loc); err != nil {
		return nil, err
	}
	s.log.Info().Str("location_id", loc.ID).Str("name", loc.Name).Msg("location created")
	return &loc, nil
}

func (s *LocationService) Update(ctx context.Context, id string, patch model.LocationPatch) (*model.Location, error) {
	return s.repo.UpdateLocation(ctx, id, patch)
}

func (s *LocationService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteLocation(ctx, id)
}
