// Package database opens the connection pool and carries transactions
// through context for the repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds the pool settings applied by Connect.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	// ConnectTimeout bounds the initial ping. Zero means defaultConnectTimeout.
	ConnectTimeout time.Duration
}

const defaultConnectTimeout = 5 * time.Second

// SupportedDriver reports whether driver has migrations and repositories.
func SupportedDriver(driver string) bool {
	return driver == DriverPostgres || driver == DriverMySQL
}

// Connect opens a pool for cfg and fails unless the server answers a ping.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	if !SupportedDriver(cfg.Driver) {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	if err := Ping(ctx, db, timeout); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Ping checks connectivity with a bounded timeout. Used by the readiness probe.
func Ping(ctx context.Context, db Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
