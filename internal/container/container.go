// Package container builds and owns the long-lived dependencies of the service.
package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/config"
	"github.com/oksasatya/mood-diary/internal/application"
	"github.com/oksasatya/mood-diary/internal/domain/repository"
	pginfra "github.com/oksasatya/mood-diary/internal/infrastructure/postgres"
	sqliteinfra "github.com/oksasatya/mood-diary/internal/infrastructure/sqlite"
	"github.com/oksasatya/mood-diary/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users repository.UserRepository
	Moods repository.MoodRepository

	// Redis is nil when CACHE_ENABLED=false.
	Redis *redis.Client

	Hasher  *helpers.PasswordHasher
	Tokens  *helpers.TokenManager
	Cookies *helpers.CookieManager

	AuthService *application.AuthService
	MoodService *application.MoodService

	closers []func()
}

// New opens the configured store, applies migrations and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStore(ctx); err != nil {
		c.Close()
		return nil, err
	}

	if cfg.CacheEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			// the cache fails open, so an unreachable redis only degrades reads
			logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable at startup")
		}
		c.Redis = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var err error
	if c.Hasher, err = helpers.NewPasswordHasher(cfg.HashName, cfg.HashIterations, cfg.HashSaltSize, cfg.HashSplitChar); err != nil {
		c.Close()
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	if c.Tokens, err = helpers.NewTokenManager(cfg.TokenSecret, cfg.TokenAlgorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL); err != nil {
		c.Close()
		return nil, fmt.Errorf("token manager: %w", err)
	}
	c.Cookies = helpers.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure)

	c.AuthService = application.NewAuthService(c.Users, c.Hasher, c.Tokens, logger)
	c.MoodService = application.NewMoodService(c.Moods, logger)
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		db, err := sqliteinfra.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		c.closers = append(c.closers, func() { _ = db.Close() })
		if err := sqliteinfra.Migrate(db, c.Logger); err != nil {
			return fmt.Errorf("sqlite migration: %w", err)
		}
		c.Users = sqliteinfra.NewUserRepository(db)
		c.Moods = sqliteinfra.NewMoodRepository(db)
	case config.BackendPostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), c.Logger); err != nil {
			return fmt.Errorf("postgres migration: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		c.Users = pginfra.NewUserRepository(pool)
		c.Moods = pginfra.NewMoodRepository(pool)
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	c.Logger.WithField("backend", cfg.StorageBackend).Info("store ready")
	return nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
