package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config selects and parameterizes the database backend.
type Config struct {
	// Driver forces a backend; when empty it is detected from URL.
	Driver Driver

	// URL is the PostgreSQL connection string.
	URL string

	// SQLitePath points at the SQLite file. Defaults to ~/.codestrike/data.db.
	SQLitePath string

	// MaxConns caps the pool size (PostgreSQL only).
	MaxConns int
}

// NewConnection opens a connection for the configured backend.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}

	switch driver {
	case DriverPostgres:
		if newPostgresConnection == nil {
			return nil, fmt.Errorf("postgres driver not registered")
		}
		return newPostgresConnection(ctx, cfg)
	case DriverSQLite:
		if newSQLiteConnection == nil {
			return nil, fmt.Errorf("sqlite driver not registered")
		}
		return newSQLiteConnection(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// DefaultSQLitePath returns the local database location.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".codestrike", "data.db")
}

// EnsureDirectory creates the parent directory of path if missing.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// The concrete drivers register themselves from their own packages to keep
// this package free of driver imports.
var (
	newPostgresConnection func(ctx context.Context, cfg Config) (Connection, error)
	newSQLiteConnection   func(ctx context.Context, cfg Config) (Connection, error)
)

// RegisterPostgresDriver installs the PostgreSQL connection factory.
func RegisterPostgresDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	newPostgresConnection = fn
}

// RegisterSQLiteDriver installs the SQLite connection factory.
func RegisterSQLiteDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	newSQLiteConnection = fn
}
