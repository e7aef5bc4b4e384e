package storage

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MysqlConfig carries the connection parameters for the mysql backend,
// matching original_source's MysqlConfig field shape.
type MysqlConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	Database  string
	Charset   string
	ParseTime bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c MysqlConfig) dsn() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database, charset, c.ParseTime,
	)
}

// NewMysql opens a network connection pool against MySQL through gorm's
// mysql dialector, with the same pool-tuning shape as NewPostgres.
func NewMysql(cfg MysqlConfig) (Store, error) {
	db, err := gorm.Open(mysql.Open(cfg.dsn()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("storage: open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("storage: mysql handle: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	return newGormStore(db)
}
