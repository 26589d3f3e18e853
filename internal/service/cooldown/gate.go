package cooldown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

// Gate serialises the read-fire-record sequence on a DedupStore so a key
// cannot fire twice inside its cool-down even under concurrent evaluation.
type Gate struct {
	store domain.DedupStore
	mu    sync.Mutex
}

func NewGate(store domain.DedupStore) *Gate {
	return &Gate{
		store: store,
	}
}

// Fire runs fn unless key fired less than cooldown before now, then records now.
// It returns whether fn was run. An fn error leaves the previous timestamp
// in place so the next tick may retry.
func (g *Gate) Fire(
	ctx context.Context,
	key string,
	now time.Time,
	cooldown time.Duration,
	fn func(ctx context.Context) error,
) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	nowMillis := now.UnixMilli()
	due, err := g.due(ctx, key, nowMillis, cooldown)
	if err != nil || !due {
		return false, err
	}

	if err := fn(ctx); err != nil {
		return false, err
	}

	if err := g.store.Set(ctx, key, nowMillis); err != nil {
		return true, fmt.Errorf("failed to record dedup key %s: %w", key, err)
	}

	return true, nil
}

// Due reports whether key may fire at now. Nothing is recorded.
func (g *Gate) Due(ctx context.Context, key string, now time.Time, cooldown time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.due(ctx, key, now.UnixMilli(), cooldown)
}

func (g *Gate) due(ctx context.Context, key string, nowMillis int64, cooldown time.Duration) (bool, error) {
	last, found, err := g.store.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrInvalidDedupValue):
		slog.WarnContext(ctx, "ignoring unparseable dedup value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to read dedup key %s: %w", key, err)
	case !found:
		return true, nil
	}

	// A stamp ahead of now (clock stepped back) would otherwise block the
	// key until the clock catches up.
	if last > nowMillis {
		slog.WarnContext(ctx, "ignoring future dedup value",
			slog.String("key", key),
			slog.Int64("fired_at_ms", last),
			slog.Int64("now_ms", nowMillis),
		)
		return true, nil
	}

	if nowMillis-last < cooldown.Milliseconds() {
		slog.DebugContext(ctx, "suppressed by cooldown",
			slog.String("key", key),
			slog.Int64("elapsed_ms", nowMillis-last),
			slog.Duration("cooldown", cooldown),
		)
		return false, nil
	}

	return true, nil
}
