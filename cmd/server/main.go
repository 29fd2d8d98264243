package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"estate/internal/cache"
	"estate/internal/config"
	"estate/internal/handler"
	"estate/internal/logger"
	"estate/internal/repository"
	"estate/internal/search"
	"estate/internal/seed"
	"estate/internal/service"
	"estate/internal/session"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Logging)
	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting estate server")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// Initialize services
	locationMatch, err := search.ParseLocationMatch(cfg.Search.LocationMatch)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid search configuration")
	}
	searchService := service.NewSearchService(
		store,
		search.NewBuilder(locationMatch),
		newResultCache(cfg, redisClient),
		service.SearchOptions{
			FeaturedLimit:    cfg.Search.FeaturedLimit,
			RelatedLimit:     cfg.Search.RelatedLimit,
			RelatedTolerance: cfg.Search.RelatedTolerance,
			CacheTTL:         cfg.Cache.TTL,
		},
		log,
	)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, newSessionStore(cfg, redisClient))
	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET is not set, admin sessions will not survive a restart")
	}

	services := handler.Services{
		Search:    searchService,
		Admin:     service.NewAdminService(store, sessions, log),
		Locations: service.NewLocationService(store, log),
		Inquiries: service.NewInquiryService(store, log),
		Contact:   service.NewContactService(store),
		Stats:     service.NewStatsService(store),
	}

	log.Info().Str("location_match", string(locationMatch)).Msg("services initialized")

	if cfg.Storage.SeedFile != "" {
		fixture, err := seed.LoadFixture(cfg.Storage.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load seed file")
		}
		res, err := seed.Apply(ctx, fixture, seed.Services{
			Admin:     services.Admin,
			Search:    services.Search,
			Locations: services.Locations,
			Contact:   services.Contact,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to apply seed file")
		}
		log.Info().Int("admins", res.Admins).Int("locations", res.Locations).Int("properties", res.Properties).Msg("seed data imported")
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if err := store.Ping(c.Request.Context()); err != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    "estate",
			"storage":    cfg.Storage.Driver,
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	handler.RegisterRoutes(router, services)

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.Store, error) {
	var store repository.Store
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		store = repository.NewMemoryRepository()
	default:
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
			cfg.PostgreSQL.QueryTimeout,
		)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to PostgreSQL database")
		store = repo
	}

	if cfg.Storage.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}

func newResultCache(cfg *config.Config, client *redis.Client) cache.Cache {
	switch {
	case !cfg.Cache.Enabled:
		return cache.Nop{}
	case client != nil:
		return cache.NewRedisCache(client)
	default:
		return cache.NewMemory()
	}
}

func newSessionStore(cfg *config.Config, client *redis.Client) session.Store {
	if cfg.Session.Store == "redis" && client != nil {
		return session.NewRedisStore(client)
	}
	return session.NewMemoryStore()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
