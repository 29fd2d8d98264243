package main

import (
	"context"
	"flag"
	"time"

	zlog "github.com/rs/zerolog/log"

	"estate/internal/cache"
	"estate/internal/config"
	"estate/internal/logger"
	"estate/internal/repository"
	"estate/internal/search"
	"estate/internal/seed"
	"estate/internal/service"
	"estate/internal/session"
)

func main() {
	file := flag.String("file", "cmd/seed/fixtures.yaml", "YAML fixture to import")
	dryRun := flag.Bool("dry-run", false, "validate the fixture without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.Logging).With().Str("component", "seed").Logger()

	fixture, err := seed.LoadFixture(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fixture")
	}
	if err := fixture.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid fixture")
	}
	if *dryRun {
		log.Info().
			Int("admins", len(fixture.Admins)).
			Int("locations", len(fixture.Locations)).
			Int("properties", len(fixture.Properties)).
			Msg("fixture is valid")
		return
	}

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
		cfg.PostgreSQL.QueryTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	locationMatch, _ := search.ParseLocationMatch(cfg.Search.LocationMatch)
	svc := seed.Services{
		Admin:     service.NewAdminService(repo, session.NewManager(cfg.Session.Secret, cfg.Session.TTL, session.NewMemoryStore()), log),
		Search:    service.NewSearchService(repo, search.NewBuilder(locationMatch), cache.Nop{}, service.DefaultSearchOptions(), log),
		Locations: service.NewLocationService(repo, log),
		Contact:   service.NewContactService(repo),
	}

	res, err := seed.Apply(ctx, fixture, svc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Int("admins", res.Admins).
		Int("locations", res.Locations).
		Int("properties", res.Properties).
		Bool("contact", res.Contact).
		Msg("seed complete")
}
