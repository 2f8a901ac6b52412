package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/config"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	defer func() {
		_ = zlog.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authService, cleanup, err := buildAuthService(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("build auth service", zap.Error(err))
	}
	defer cleanup()

	app := newApp(cfg, zlog, handler.NewAuthHandler(authService, cfg, zlog))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}
