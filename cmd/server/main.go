// Command server is the thin binary entry point: parse flags, load layered
// config, build a logger, wire the app, run until a shutdown signal arrives.
// Mirrors the teacher's cmd/server/main.go lifecycle shape (config load ->
// component init -> goroutine-served ListenAndServe -> signal-driven
// graceful Shutdown), generalized onto internal/app.New per SPEC_FULL.md
// §4.10.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/koopa0/shortener/internal/app"
	"github.com/koopa0/shortener/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "shortener:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("SHORTENER_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	flags := config.ParseFlags(os.Args[1:])
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("address", cfg.Server.Address),
		zap.String("database_type", string(cfg.Database.Type)),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("geoip_enabled", cfg.GeoIP.Enabled),
	)

	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("wire app: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.Run(); err != nil {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	a.Shutdown(context.Background())
	logger.Info("server stopped gracefully")
	return nil
}

// newLogger builds a zap logger from the logging config section, matching
// the teacher's preference for structured JSON logs in production while
// allowing a human-readable console encoder in development.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Format == "console" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return zcfg.Build()
}
