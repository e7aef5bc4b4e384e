// Package config loads the layered server configuration: a TOML file, then
// environment overrides (SHORTENER__SECTION__KEY), then command-line flags.
// The layering order and env-var naming follow
// _examples/original_source/shortener-server/src/config.rs's
// Environment::with_prefix("SHORTENER").separator("__") convention; the
// file/env/flag precedence itself generalizes the teacher's
// cmd/server/main.go loadConfig (which only had env-over-default layering).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration structure. Field order matches
// SPEC_FULL.md §6's config table.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Shortener ShortenerConfig `toml:"shortener"`
	Admin     AdminConfig     `toml:"admin"`
	Database  DatabaseConfig  `toml:"database"`
	Cache     CacheConfig     `toml:"cache"`
	GeoIP     GeoIPConfig     `toml:"geoip"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Address         string `toml:"address"`
	TrustedPlatform string `toml:"trusted_platform"`
	SiteURL         string `toml:"site_url"`
	APIKey          string `toml:"api_key"`
	// InstanceID is this process's Snowflake machine ID (0-1023), used to
	// keep Link.ID/AccessEvent.ID unique across a multi-instance deployment.
	// A single-instance deployment can leave it at the default.
	InstanceID int64 `toml:"instance_id"`
}

type ShortenerConfig struct {
	CodeLength  int    `toml:"code_length"`
	CodeCharset string `toml:"code_charset"`
}

type AdminConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	// JWTSecret signs bearer tokens; JWTTTL bounds their lifetime.
	JWTSecret string        `toml:"jwt_secret"`
	JWTTTL    time.Duration `toml:"jwt_ttl"`
}

// DatabaseType selects one of the three durable backends.
type DatabaseType string

const (
	DatabaseSqlite   DatabaseType = "sqlite"
	DatabasePostgres DatabaseType = "postgres"
	DatabaseMysql    DatabaseType = "mysql"
)

type DatabaseConfig struct {
	Type     DatabaseType   `toml:"type"`
	Sqlite   SqliteConfig   `toml:"sqlite"`
	Postgres PostgresConfig `toml:"postgres"`
	Mysql    MysqlConfig    `toml:"mysql"`
}

type SqliteConfig struct {
	Path string `toml:"path"`
}

type PostgresConfig struct {
	Host         string        `toml:"host"`
	Port         int           `toml:"port"`
	User         string        `toml:"user"`
	Password     string        `toml:"password"`
	Database     string        `toml:"database"`
	SSLMode      string        `toml:"sslmode"`
	TimeZone     string        `toml:"timezone"`
	MaxOpenConns int           `toml:"max_open_conns"`
	MaxIdleConns int           `toml:"max_idle_conns"`
	ConnMaxLife  time.Duration `toml:"conn_max_lifetime"`
}

type MysqlConfig struct {
	Host         string        `toml:"host"`
	Port         int           `toml:"port"`
	User         string        `toml:"user"`
	Password     string        `toml:"password"`
	Database     string        `toml:"database"`
	Charset      string        `toml:"charset"`
	ParseTime    bool          `toml:"parse_time"`
	MaxOpenConns int           `toml:"max_open_conns"`
	MaxIdleConns int           `toml:"max_idle_conns"`
	ConnMaxLife  time.Duration `toml:"conn_max_lifetime"`
}

type CacheConfig struct {
	Enabled bool          `toml:"enabled"`
	Addr    string        `toml:"addr"`
	Expire  time.Duration `toml:"expire"`
	Prefix  string        `toml:"prefix"`
}

type GeoIPCachePolicy string

const (
	GeoIPCacheNone  GeoIPCachePolicy = "none"
	GeoIPCacheIndex GeoIPCachePolicy = "index"
	GeoIPCacheFull  GeoIPCachePolicy = "full"
)

type GeoIPConfig struct {
	Enabled      bool             `toml:"enabled"`
	Path         string           `toml:"path"`
	CachePolicy  GeoIPCachePolicy `toml:"cache_policy"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// defaults mirrors config.rs's apply_defaults.
func defaults() Config {
	return Config{
		Server: ServerConfig{
			Address:    ":8080",
			SiteURL:    "http://localhost:8080",
			InstanceID: 1,
		},
		Shortener: ShortenerConfig{
			CodeLength:  6,
			CodeCharset: "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz",
		},
		Admin: AdminConfig{
			JWTTTL: 24 * time.Hour,
		},
		Database: DatabaseConfig{
			Type: DatabaseSqlite,
			Sqlite: SqliteConfig{
				Path: "shortener.db",
			},
			Postgres: PostgresConfig{
				MaxOpenConns: 10,
				MaxIdleConns: 5,
				ConnMaxLife:  5 * time.Minute,
			},
			Mysql: MysqlConfig{
				MaxOpenConns: 10,
				MaxIdleConns: 5,
				ConnMaxLife:  5 * time.Minute,
			},
		},
		Cache: CacheConfig{
			Expire: time.Hour,
			Prefix: "shorten:",
		},
		GeoIP: GeoIPConfig{
			CachePolicy: GeoIPCacheIndex,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path (if it exists), applies the SHORTENER__SECTION__KEY
// environment overlay, applies flag overrides, and validates the result.
// An absent file is not an error: defaults plus environment/flags remain
// a conforming configuration for local development.
func Load(path string, flags Flags) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	flags.ApplyTo(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the startup invariants SPEC_FULL.md §4.10 names:
// admin credential and API key present, code length in [4, 16].
func (c Config) Validate() error {
	if c.Server.APIKey == "" {
		return fmt.Errorf("config: server.api_key must be set")
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("config: admin.username and admin.password must be set")
	}
	if c.Shortener.CodeLength < 4 || c.Shortener.CodeLength > 16 {
		return fmt.Errorf("config: shortener.code_length must be in [4, 16], got %d", c.Shortener.CodeLength)
	}
	if c.Server.InstanceID < 0 || c.Server.InstanceID > 1023 {
		return fmt.Errorf("config: server.instance_id must be in [0, 1023], got %d", c.Server.InstanceID)
	}
	switch c.Database.Type {
	case DatabaseSqlite, DatabasePostgres, DatabaseMysql:
	default:
		return fmt.Errorf("config: database.type must be one of sqlite, postgres, mysql, got %q", c.Database.Type)
	}
	return nil
}
