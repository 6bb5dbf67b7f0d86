// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/classifier"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/normalizer"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/oov"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/pantry"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/shopping"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/config"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/http/server"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/persistence"
	gormrepo "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/persistence/gorm"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/persistence/memory"
	redisrepo "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/persistence/redis"
	vocabcache "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/pkg/healthcheck"
	"github.com/chamchi6619/pantry-app-v1-sub004/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(
	persistence.OpenDatabase,
)

// CacheModule provides the cache repository. Redis when reachable,
// in-memory otherwise so local development needs no infrastructure.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, using in-memory cache")
			return memory.NewCacheRepository()
		}
		client, err := redisrepo.NewClient(cfg)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
			return memory.NewCacheRepository()
		}
		return redisrepo.NewCacheRepository(client, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormrepo.NewVocabularyRepository,
	gormrepo.NewTemplateRecipeRepository,
	gormrepo.NewSavedRecipeRepository,
	gormrepo.NewPantryRepository,
	gormrepo.NewSubstitutionRepository,
	gormrepo.NewOOVRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(repo outbound.VocabularyRepository, cfg *config.Config, log *zap.Logger) *vocabcache.Cache {
		return vocabcache.NewCache(repo, cfg.Matching.VocabularyTTL, log)
	},

	fx.Annotate(
		func(vocab *vocabcache.Cache, oovRepo outbound.OOVRepository, cfg *config.Config, log *zap.Logger) *normalizer.Service {
			return normalizer.NewService(vocab, oovRepo, cfg.Matching.FuzzyThreshold, log)
		},
		fx.As(new(inbound.Normalizer)),
	),

	func(cfg *config.Config, log *zap.Logger) *classifier.Service {
		return classifier.NewService(cfg.Matching.Staples, cfg.Matching.HeroKeywords, log)
	},

	fx.Annotate(
		func(
			recipeRepo outbound.SavedRecipeRepository,
			pantryRepo outbound.PantryRepository,
			ruleRepo outbound.SubstitutionRepository,
			cache outbound.CacheRepository,
			cfg *config.Config,
			log *zap.Logger,
		) *matching.Service {
			return matching.NewService(recipeRepo, pantryRepo, ruleRepo, cache, cfg.Matching, log)
		},
		fx.As(new(inbound.MatchService)),
	),

	fx.Annotate(
		func(
			oovRepo outbound.OOVRepository,
			vocabRepo outbound.VocabularyRepository,
			snapshot *vocabcache.Cache,
			cfg *config.Config,
			log *zap.Logger,
		) *oov.Service {
			return oov.NewService(oovRepo, vocabRepo, snapshot, cfg.Matching.OOVReviewLimit, log)
		},
		fx.As(new(inbound.OOVService)),
	),

	fx.Annotate(
		pantry.NewService,
		fx.As(new(inbound.PantryService)),
	),

	fx.Annotate(
		catalog.NewService,
		fx.As(new(inbound.CatalogService)),
	),

	fx.Annotate(
		shopping.NewService,
		fx.As(new(inbound.ShoppingService)),
	),
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	NewHealthCheck,
	server.NewServer,
)

// NewHealthCheck builds the health registry with checks for every hard
// and soft dependency of the engine.
func NewHealthCheck(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	cache outbound.CacheRepository,
	snapshot *vocabcache.Cache,
) *healthcheck.HealthCheck {
	hc := healthcheck.New(cfg.App.Version, log)
	hc.Register(healthcheck.NewDatabaseChecker(db))
	hc.Register(healthcheck.NewCustomChecker("cache", func(ctx context.Context) (healthcheck.Status, string) {
		if _, err := cache.Exists(ctx, "healthcheck:probe"); err != nil {
			return healthcheck.StatusDegraded, err.Error()
		}
		return healthcheck.StatusHealthy, ""
	}))
	hc.Register(healthcheck.NewCustomChecker("vocabulary", func(ctx context.Context) (healthcheck.Status, string) {
		if _, err := snapshot.Current(ctx); err != nil {
			return healthcheck.StatusDegraded, err.Error()
		}
		return healthcheck.StatusHealthy, ""
	}))
	return hc
}

// LifecycleModule registers application lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the HTTP server on application start
// and tears everything down on stop.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	cache outbound.CacheRepository,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting pantry match engine",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down pantry match engine")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if closer, ok := cache.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					log.Error("Failed to close cache", zap.Error(err))
				}
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
