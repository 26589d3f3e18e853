package repository

import (
	"context"
	"sync"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

// memoryDedupStore does not survive a restart. It backs tests and
// DEDUP_BACKEND=memory.
type memoryDedupStore struct {
	mu      sync.Mutex
	markers map[string]int64
}

func NewMemoryDedupStore() domain.DedupStore {
	return &memoryDedupStore{
		markers: make(map[string]int64),
	}
}

func (m *memoryDedupStore) Get(_ context.Context, key string) (int64, bool, error) {
	if key == "" {
		return 0, false, ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	firedAt, ok := m.markers[key]
	return firedAt, ok, nil
}

func (m *memoryDedupStore) Set(_ context.Context, key string, firedAtMillis int64) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.markers[key] = firedAtMillis
	return nil
}
