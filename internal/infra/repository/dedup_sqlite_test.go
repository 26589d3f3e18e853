package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

func openTestSQLite(t *testing.T) (*SQLiteDedupStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state", "dedup.db")
	store, err := OpenSQLiteDedupStore(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLiteDedupStore() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	return store, path
}

func TestSQLiteDedupStore(t *testing.T) {
	store, _ := openTestSQLite(t)
	runDedupStoreContract(t, store)
}

func TestSQLiteDedupStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dedup.db")

	first, err := OpenSQLiteDedupStore(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLiteDedupStore() error = %v", err)
	}
	if err := first.Set(ctx, domain.HourlyDedupKey, 42); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := OpenSQLiteDedupStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	firedAt, found, err := second.Get(ctx, domain.HourlyDedupKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || firedAt != 42 {
		t.Errorf("Get() = (%d, %v), want (42, true)", firedAt, found)
	}
}

func TestSQLiteDedupStore_InvalidValue(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestSQLite(t)

	if _, err := store.db.ExecContext(ctx,
		`INSERT INTO dedup_markers (key, fired_at, updated_at) VALUES (?, ?, ?)`,
		"reminder:broken", "12abc", 0,
	); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	_, found, err := store.Get(ctx, "reminder:broken")
	if !errors.Is(err, domain.ErrInvalidDedupValue) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrInvalidDedupValue)
	}
	if found {
		t.Error("Get() found = true for invalid value")
	}
}

func TestSQLiteDedupStore_Ping(t *testing.T) {
	store, _ := openTestSQLite(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
