// Package app wires the components the rest of internal/ defines into a
// runnable server and owns its startup/shutdown lifecycle, generalizing the
// teacher's cmd/server/main.go (which inlined this wiring directly) into a
// reusable constructor the binary in cmd/server can stay thin around.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/koopa0/shortener/internal/auth"
	"github.com/koopa0/shortener/internal/cache"
	"github.com/koopa0/shortener/internal/codegen"
	"github.com/koopa0/shortener/internal/config"
	"github.com/koopa0/shortener/internal/enrich"
	"github.com/koopa0/shortener/internal/historysvc"
	"github.com/koopa0/shortener/internal/httpapi"
	"github.com/koopa0/shortener/internal/linksvc"
	"github.com/koopa0/shortener/internal/redirectsvc"
	"github.com/koopa0/shortener/internal/storage"
	"github.com/koopa0/shortener/pkg/snowflake"
	"go.uber.org/zap"
)

// shutdownTimeout bounds graceful shutdown, matching SPEC_FULL.md §4.10's
// documented default.
const shutdownTimeout = 30 * time.Second

// App holds every long-lived component New assembles, so Run/Shutdown can
// tear them down in the right order.
type App struct {
	cfg       config.Config
	logger    *zap.Logger
	store     storage.Store
	geo       *enrich.Geo
	redirects *redirectsvc.Pipeline
	httpSrv   *http.Server
}

// New wires config -> storage -> cache -> codegen -> snowflake -> enrich ->
// linksvc -> historysvc -> redirectsvc -> auth -> httpapi, in the
// dependency order SPEC_FULL.md §2's component table implies (leaves first).
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := storage.Open(storage.Config{
		Backend: storage.Backend(cfg.Database.Type),
		Sqlite:  storage.SqliteConfig{Path: cfg.Database.Sqlite.Path},
		Postgres: storage.PostgresConfig{
			Host:            cfg.Database.Postgres.Host,
			Port:            cfg.Database.Postgres.Port,
			User:            cfg.Database.Postgres.User,
			Password:        cfg.Database.Postgres.Password,
			Database:        cfg.Database.Postgres.Database,
			SSLMode:         cfg.Database.Postgres.SSLMode,
			TimeZone:        cfg.Database.Postgres.TimeZone,
			MaxOpenConns:    cfg.Database.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Database.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.Postgres.ConnMaxLife,
		},
		Mysql: storage.MysqlConfig{
			Host:            cfg.Database.Mysql.Host,
			Port:            cfg.Database.Mysql.Port,
			User:            cfg.Database.Mysql.User,
			Password:        cfg.Database.Mysql.Password,
			Database:        cfg.Database.Mysql.Database,
			Charset:         cfg.Database.Mysql.Charset,
			ParseTime:       cfg.Database.Mysql.ParseTime,
			MaxOpenConns:    cfg.Database.Mysql.MaxOpenConns,
			MaxIdleConns:    cfg.Database.Mysql.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.Mysql.ConnMaxLife,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("app: open storage: %w", err)
	}

	cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	c := cache.Open(cacheCtx, cache.Config{
		Enabled: cfg.Cache.Enabled,
		Addr:    cfg.Cache.Addr,
		Prefix:  cfg.Cache.Prefix,
		Expire:  cfg.Cache.Expire,
	})
	cancel()

	gen, err := codegen.New(cfg.Shortener.CodeCharset, cfg.Shortener.CodeLength)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("app: build code generator: %w", err)
	}

	idgen, err := snowflake.NewGenerator(cfg.Server.InstanceID)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("app: build id generator: %w", err)
	}

	var geo *enrich.Geo
	if cfg.GeoIP.Enabled {
		geo, err = enrich.NewGeo(cfg.GeoIP.Path, enrich.CachePolicy(cfg.GeoIP.CachePolicy))
		if err != nil {
			logger.Warn("geoip database unavailable, enrichment degraded to empty", zap.Error(err))
			geo = &enrich.Geo{}
		}
	} else {
		geo = &enrich.Geo{}
	}

	links := linksvc.New(store, c, gen, idgen, logger)
	history := historysvc.New(store)
	redirects := redirectsvc.New(links, geo, store, idgen, logger, redirectsvc.Config{})
	gate := auth.New(cfg.Server.APIKey, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.JWTSecret, cfg.Admin.JWTTTL)

	srv := httpapi.New(links, history, redirects, gate, logger, cfg.Server.TrustedPlatform)

	return &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		geo:       geo,
		redirects: redirects,
		httpSrv: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      srv.Handler(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Run starts the HTTP server and blocks until it stops (normally via
// Shutdown calling httpSrv.Shutdown, which unblocks ListenAndServe with
// http.ErrServerClosed).
func (a *App) Run() error {
	a.logger.Info("starting server", zap.String("addr", a.cfg.Server.Address))
	if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight HTTP requests, stops the redirect pipeline's
// worker pool, and closes the storage pool and geo database handle, each
// bounded by shutdownTimeout per SPEC_FULL.md §4.10.
func (a *App) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", zap.Error(err))
	}

	a.redirects.Close(ctx)

	if err := a.store.Close(); err != nil {
		a.logger.Error("storage close error", zap.Error(err))
	}

	a.geo.Close()
}
