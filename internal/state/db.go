// Package state is the local sqlite-backed key/value store under the user's
// config directory. The plan computation itself never touches it; it only
// backs ancillary caches such as the version check.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	appconfig "github.com/rockplan/rockplan/internal/apps/rockplan/config"
	"github.com/rockplan/rockplan/internal/logs"
)

type Config struct {
	// Path is the absolute path to the sqlite file.
	Path string

	// BusyTimeout is how long another writer waits (in milliseconds)
	// before failing with "database is locked". Zero means 5000.
	BusyTimeout int

	// JournalMode, usually "WAL". Empty means "WAL".
	JournalMode string
}

type DB struct {
	sql *sql.DB
}

var defaultDB *DB

func OpenDefault(ctx context.Context) (*DB, error) {
	if defaultDB == nil {
		dbPath := appconfig.StateDBFile()
		logs.Debugf("state: opening database at %s", dbPath)
		var err error
		defaultDB, err = Open(ctx, Config{Path: dbPath})
		if err != nil {
			return nil, err
		}
	}
	return defaultDB, nil
}

// Open opens (or creates) the sqlite database, configures WAL and a busy
// timeout, and verifies the connection.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("state: Path is required")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5000
	}
	if cfg.JournalMode == "" {
		cfg.JournalMode = "WAL"
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("state: create dir: %w", err)
	}

	dsn := fmt.Sprintf(
		"file:%s?_busy_timeout=%d&_journal_mode=%s",
		url.PathEscape(cfg.Path),
		cfg.BusyTimeout,
		url.QueryEscape(cfg.JournalMode),
	)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("state: open: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("state: ping: %w", err)
	}

	return &DB{sql: sqlDB}, nil
}

func (db *DB) Raw() *sql.DB {
	return db.sql
}

func (db *DB) Close() error {
	return db.sql.Close()
}
