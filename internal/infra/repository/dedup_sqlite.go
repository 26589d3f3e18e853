package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	// Registers the pure Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

const createDedupTable = `
CREATE TABLE IF NOT EXISTS dedup_markers (
	key        TEXT PRIMARY KEY,
	fired_at   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteDedupStore keeps dedup markers in a local database file for
// single-host deployments without Redis.
type SQLiteDedupStore struct {
	db *sql.DB
}

func OpenSQLiteDedupStore(ctx context.Context, path string) (*SQLiteDedupStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, createDedupTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create dedup table: %w", err)
	}

	return &SQLiteDedupStore{db: db}, nil
}

func (s *SQLiteDedupStore) Get(ctx context.Context, key string) (int64, bool, error) {
	if key == "" {
		return 0, false, ErrEmptyKey
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT fired_at FROM dedup_markers WHERE key = ?`, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}

	firedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: key %s holds %q", domain.ErrInvalidDedupValue, key, raw)
	}

	return firedAt, true, nil
}

func (s *SQLiteDedupStore) Set(ctx context.Context, key string, firedAtMillis int64) error {
	if key == "" {
		return ErrEmptyKey
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dedup_markers (key, fired_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			fired_at   = excluded.fired_at,
			updated_at = excluded.updated_at`,
		key, strconv.FormatInt(firedAtMillis, 10), time.Now().UTC().Unix(),
	)
	return err
}

func (s *SQLiteDedupStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDedupStore) Close() error {
	return s.db.Close()
}
