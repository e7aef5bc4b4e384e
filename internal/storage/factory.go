package storage

import "fmt"

// Backend names a configured durable engine.
type Backend string

const (
	BackendSqlite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMysql    Backend = "mysql"
)

// Config selects and parameterizes one backend. Only the field matching
// Backend is consulted.
type Config struct {
	Backend  Backend
	Sqlite   SqliteConfig
	Postgres PostgresConfig
	Mysql    MysqlConfig
}

// Open constructs the configured Store. This is the only place the three
// backends are named together; every other package depends on the Store
// interface alone.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendSqlite:
		return NewSqlite(cfg.Sqlite)
	case BackendPostgres:
		return NewPostgres(cfg.Postgres)
	case BackendMysql:
		return NewMysql(cfg.Mysql)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
