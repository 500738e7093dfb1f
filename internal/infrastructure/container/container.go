// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/application/planner"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/config"
	gormRepo "github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/persistence/gorm"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/persistence/memory"
	redisRepo "github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/persistence/redis"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/persistence/sqlite"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/inbound"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/outbound"
	"github.com/grekooss/lowcarbplaner-portfolio/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	ServiceModule,

	// Lifecycle hooks
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
	// Provide sugared logger
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// DatabaseModule provides database connections
var DatabaseModule = fx.Provide(
	// SQLite database with GORM
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		dbPath := cfg.Database.Path

		// Set log level based on config
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(dbPath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		// Seed database with the demo catalog
		if cfg.Database.SeedDemoData {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", dbPath),
			zap.Bool("in_memory", dbPath == ":memory:"),
		)

		return db, nil
	},
)

// CacheModule provides caching. Redis when enabled, in-memory otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			client, err := redisRepo.NewClient(cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			log.Info("Using Redis cache", zap.String("addr", cfg.RedisAddr()))
			return redisRepo.NewCacheRepository(client, log), nil
		}
		log.Info("Using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	// Recipe catalog
	fx.Annotate(
		gormRepo.NewCatalogRepository,
		fx.As(new(outbound.RecipeCatalog)),
	),

	// Planned meal repository
	fx.Annotate(
		gormRepo.NewPlannedMealRepository,
		fx.As(new(outbound.PlannedMealRepository)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// Meal plan service
	func(
		catalog outbound.RecipeCatalog,
		meals outbound.PlannedMealRepository,
		cache outbound.CacheRepository,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.MealPlanService {
		opts := []planner.Option{
			planner.WithMaxPasses(cfg.Planner.MaxOptimizerPasses),
			planner.WithCacheTTL(cfg.Planner.CacheTTL),
		}
		if cfg.Planner.Seed != 0 {
			opts = append(opts, planner.WithSeed(cfg.Planner.Seed))
		}
		return planner.NewPlanService(catalog, meals, cache, log, opts...)
	},
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting LowCarbPlaner",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down LowCarbPlaner")

			// Close database connections
			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}
