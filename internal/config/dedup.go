package config

import (
	"os"
	"strings"
)

const (
	dedupBackendEnv    = "DEDUP_BACKEND"
	dedupSQLitePathEnv = "DEDUP_SQLITE_PATH"

	DedupBackendRedis  = "redis"
	DedupBackendSQLite = "sqlite"
	DedupBackendMemory = "memory"

	defaultSQLitePath = "data/dedup.db"
)

type DedupConfig struct {
	Backend    string
	SQLitePath string
}

func LoadDedupConfig() *DedupConfig {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv(dedupBackendEnv)))
	if backend == "" {
		backend = DedupBackendRedis
	}

	path := os.Getenv(dedupSQLitePathEnv)
	if path == "" {
		path = defaultSQLitePath
	}

	return &DedupConfig{
		Backend:    backend,
		SQLitePath: path,
	}
}

func (c *DedupConfig) Validate() error {
	switch c.Backend {
	case DedupBackendRedis, DedupBackendMemory:
		return nil
	case DedupBackendSQLite:
		if c.SQLitePath == "" {
			return ErrSQLitePathMissing
		}
		return nil
	default:
		return ErrInvalidDedupBackend
	}
}
