package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/config"
	"github.com/AnthoniusHendriyanto/secure-auth/db"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/repository/memory"
	repo "github.com/AnthoniusHendriyanto/secure-auth/internal/auth/repository/postgres"
	throttle "github.com/AnthoniusHendriyanto/secure-auth/internal/auth/repository/redis"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/service"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/security"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// buildAuthService picks the stores named by cfg. The returned cleanup closes
// whatever connections were opened.
func buildAuthService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*service.AuthService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var (
		accounts domain.AccountRepository
		history  domain.LoginHistoryRepository
	)
	if cfg.DBURL == config.MemoryDBURL {
		logger.Warn("using in-memory account store, data is lost on restart")
		store := memory.NewStore()
		accounts, history = store, store
	} else {
		pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, pool.Close)

		if cfg.DBAutoMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				cleanup()
				return nil, func() {}, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("database migrated")
		}
		pg := repo.NewPostgresRepository(pool)
		accounts, history = pg, pg
	}

	var throttleStore domain.ThrottleStore
	if cfg.RedisURL != "" {
		client, err := throttle.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() { _ = client.Close() })
		throttleStore = throttle.NewThrottleStore(client)
	} else {
		logger.Warn("REDIS_URL not set, login throttle counters are per process")
		throttleStore = memory.NewThrottleStore()
	}

	var cipher *security.FieldCipher
	if cfg.EncryptionKey != "" {
		c, err := security.NewFieldCipher(cfg.EncryptionKey)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		cipher = c
	} else {
		logger.Warn("ENCRYPTION_KEY not set, 2fa secrets are stored in plaintext")
	}

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	authService := service.NewAuthService(accounts, history, throttleStore, tokenService, cipher, cfg,
		service.WithLogger(logger))

	return authService, cleanup, nil
}

func newApp(cfg *config.Config, logger *zap.Logger, h *handler.AuthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "secure-auth",
		ProxyHeader:           cfg.ProxyHeader,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	app.Use(handler.RequestLogger(logger))
	if cfg.RateLimitEnabled {
		app.Use(handler.NewGlobalLimiter(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowMin)*time.Minute))
	}

	handler.RegisterRoutes(app, h)
	return app
}
