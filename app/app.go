package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"capsule-os/app/controller"
	"capsule-os/app/router"
	"capsule-os/cache"
	"capsule-os/capsule"
	"capsule-os/config"
	"capsule-os/db"
	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/repository"
	"capsule-os/review"
	"capsule-os/scoring"
	"capsule-os/service"
)

// App holds the wired HTTP handler and the resources that must be released on shutdown
type App struct {
	Handler http.Handler

	db      *sql.DB
	closers []func() error
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	// Initialize database connection
	dsn, err := cfg.Database.DSN()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database settings: %w", err)
	}
	conn, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.db = conn
	if err := db.EnsureSchema(ctx, conn); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(conn)
	closetRepo := repository.NewClosetRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)

	// Initialize cache backend
	store, err := a.openCache(ctx, cfg.Cache)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Capsule generation
	templates := capsule.LoadTemplates(cfg.Capsule.TemplatesPath)
	generator := capsule.NewGenerator(templates, catalogRepo)
	capsuleService := service.NewCapsuleService(generator, closetRepo, store, cfg.Cache.TTL)

	// Item analysis
	reviews := review.NewRuleBasedProvider(reviewRepo)
	alternatives := scoring.NewAlternativesFinder(catalogRepo, scoring.DefaultBreakerConfig())
	analysisService := service.NewAnalysisService(reviews, alternatives, closetRepo)

	// Lookbook export
	images := service.NewImageFetcher(cfg.Server.BaseURL, cfg.Lookbook.ImageTimeout, store)
	lookbookService := service.NewLookbookService(cfg.Lookbook.TemplatePath, cfg.Lookbook.ChromePath, cfg.Lookbook.Timeout, images)

	// Create controllers
	controllers := &router.Controllers{
		Capsule:  controller.NewCapsuleController(capsuleService, cfg.Capsule.MaxBudget),
		Analysis: controller.NewAnalysisController(analysisService),
		Closet:   controller.NewClosetController(closetRepo),
		Product:  controller.NewProductController(catalogRepo),
		Lookbook: controller.NewLookbookController(capsuleService, lookbookService, cfg.Capsule.MaxBudget),
	}

	a.Handler = router.SetupRoutes(controllers, router.Options{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	})

	logging.Info().
		Str("cache_backend", cfg.Cache.Backend).
		Bool("builtin_templates", templates.IsBuiltin()).
		Msg("✅ Application initialized")
	return a, nil
}

// openCache selects the capsule cache backend from configuration
func (a *App) openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logging.Info().Msg("✅ Redis cache connected")
		redisCache := cache.NewRedis(client)
		a.closers = append(a.closers, redisCache.Close)
		return redisCache, nil
	case config.CacheBackendNone:
		return cache.Noop{}, nil
	default:
		memory := cache.NewMemory()
		err := metrics.RegisterCacheStats(prometheus.DefaultRegisterer, func() (int64, int64, int64, int64) {
			stats := memory.GetStats()
			return stats.Hits, stats.Misses, stats.Evictions, stats.TotalKeys
		})
		if err != nil {
			logging.Warn().Err(err).Msg("⚠️ Memory cache stats not exported")
		}
		return memory, nil
	}
}

// Close releases the database connection and any cache client
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logging.Warn().Err(err).Msg("⚠️ Failed to close resource")
		}
	}
	a.closers = nil

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logging.Warn().Err(err).Msg("⚠️ Failed to close database")
		}
		a.db = nil
	}
}
