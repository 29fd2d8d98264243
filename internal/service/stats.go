package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"estate/internal/model"
	"estate/internal/search"
)

// StatsStore is the storage the dashboard needs
type StatsStore interface {
	FindProperties(ctx context.Context, q search.Query) ([]model.Property, error)
	ListInquiries(ctx context.Context) ([]model.Inquiry, error)
	ListLocations(ctx context.Context, activeOnly bool) ([]model.Location, error)
}

// StatsService computes the admin dashboard counters
type StatsService struct {
	repo StatsStore
}

func NewStatsService(repo StatsStore) *StatsService {
	return &StatsService{repo: repo}
}

// Dashboard loads active properties, inquiries and locations concurrently
func (s *StatsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var (
		properties []model.Property
		inquiries  []model.Inquiry
		locations  []model.Location
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = s.repo.FindProperties(gctx, search.Query{Where: []search.Predicate{search.Active()}})
		return err
	})
	g.Go(func() error {
		var err error
		inquiries, err = s.repo.ListInquiries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = s.repo.ListLocations(gctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalProperties: len(properties),
		TotalLocations:  len(locations),
	}
	for _, p := range properties {
		if p.IsFeatured {
			stats.FeaturedProperties++
		}
	}
	for _, inq := range inquiries {
		if inq.Status == model.InquiryStatusNew {
			stats.NewInquiries++
		}
	}
	return stats, nil
}
