package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overlays environment variables named SHORTENER__SECTION__KEY
// (double-underscore separated, matching original_source's
// Environment::with_prefix("SHORTENER").separator("__")) onto cfg. Only the
// known keys below are recognized; unrecognized SHORTENER__* variables are
// ignored rather than rejected, so operators can set unrelated SHORTENER__*
// variables for future fields without this binary refusing to start.
func applyEnv(cfg *Config) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			} else if secs, err := strconv.Atoi(v); err == nil {
				*dst = time.Duration(secs) * time.Second
			}
		}
	}

	int64Val := func(key string, dst *int64) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				*dst = n
			}
		}
	}

	str("SERVER__ADDRESS", &cfg.Server.Address)
	str("SERVER__TRUSTED_PLATFORM", &cfg.Server.TrustedPlatform)
	str("SERVER__SITE_URL", &cfg.Server.SiteURL)
	str("SERVER__API_KEY", &cfg.Server.APIKey)
	int64Val("SERVER__INSTANCE_ID", &cfg.Server.InstanceID)

	integer("SHORTENER__CODE_LENGTH", &cfg.Shortener.CodeLength)
	str("SHORTENER__CODE_CHARSET", &cfg.Shortener.CodeCharset)

	str("ADMIN__USERNAME", &cfg.Admin.Username)
	str("ADMIN__PASSWORD", &cfg.Admin.Password)
	str("ADMIN__JWT_SECRET", &cfg.Admin.JWTSecret)
	duration("ADMIN__JWT_TTL", &cfg.Admin.JWTTTL)

	if v, ok := lookup("DATABASE__TYPE"); ok {
		cfg.Database.Type = DatabaseType(v)
	}
	str("DATABASE__SQLITE__PATH", &cfg.Database.Sqlite.Path)
	str("DATABASE__POSTGRES__HOST", &cfg.Database.Postgres.Host)
	integer("DATABASE__POSTGRES__PORT", &cfg.Database.Postgres.Port)
	str("DATABASE__POSTGRES__USER", &cfg.Database.Postgres.User)
	str("DATABASE__POSTGRES__PASSWORD", &cfg.Database.Postgres.Password)
	str("DATABASE__POSTGRES__DATABASE", &cfg.Database.Postgres.Database)
	str("DATABASE__POSTGRES__SSLMODE", &cfg.Database.Postgres.SSLMode)
	integer("DATABASE__POSTGRES__MAX_OPEN_CONNS", &cfg.Database.Postgres.MaxOpenConns)
	integer("DATABASE__POSTGRES__MAX_IDLE_CONNS", &cfg.Database.Postgres.MaxIdleConns)
	duration("DATABASE__POSTGRES__CONN_MAX_LIFETIME", &cfg.Database.Postgres.ConnMaxLife)
	str("DATABASE__MYSQL__HOST", &cfg.Database.Mysql.Host)
	integer("DATABASE__MYSQL__PORT", &cfg.Database.Mysql.Port)
	str("DATABASE__MYSQL__USER", &cfg.Database.Mysql.User)
	str("DATABASE__MYSQL__PASSWORD", &cfg.Database.Mysql.Password)
	str("DATABASE__MYSQL__DATABASE", &cfg.Database.Mysql.Database)
	integer("DATABASE__MYSQL__MAX_OPEN_CONNS", &cfg.Database.Mysql.MaxOpenConns)
	integer("DATABASE__MYSQL__MAX_IDLE_CONNS", &cfg.Database.Mysql.MaxIdleConns)
	duration("DATABASE__MYSQL__CONN_MAX_LIFETIME", &cfg.Database.Mysql.ConnMaxLife)

	boolean("CACHE__ENABLED", &cfg.Cache.Enabled)
	str("CACHE__ADDR", &cfg.Cache.Addr)
	duration("CACHE__EXPIRE", &cfg.Cache.Expire)
	str("CACHE__PREFIX", &cfg.Cache.Prefix)

	boolean("GEOIP__ENABLED", &cfg.GeoIP.Enabled)
	str("GEOIP__PATH", &cfg.GeoIP.Path)
	if v, ok := lookup("GEOIP__CACHE_POLICY"); ok {
		cfg.GeoIP.CachePolicy = GeoIPCachePolicy(v)
	}

	str("LOGGING__LEVEL", &cfg.Logging.Level)
	str("LOGGING__FORMAT", &cfg.Logging.Format)
}

func lookup(suffix string) (string, bool) {
	v := os.Getenv("SHORTENER__" + suffix)
	if v == "" {
		return "", false
	}
	return v, true
}
