package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

const DefaultTTL = 60 * time.Second

// Snapshot is the read-only input of one tick. A nil field means the input
// is not loaded and the policies depending on it are skipped.
type Snapshot struct {
	Reminders []domain.Reminder
	NightMode *domain.NightMode
	Water     *domain.WaterSnapshot
}

func (s Snapshot) RemindersLoaded() bool {
	return s.Reminders != nil
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
	loaded    bool
}

func (e *entry[T]) fresh(now time.Time, ttl time.Duration) bool {
	return e.loaded && now.Sub(e.fetchedAt) < ttl
}

// Source caches backend snapshots for a short TTL and refreshes stale ones
// concurrently.
type Source struct {
	repo domain.HydrationRepository
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	reminders entry[[]domain.Reminder]
	nightMode entry[*domain.NightMode]
	water     entry[*domain.WaterSnapshot]
}

func NewSource(repo domain.HydrationRepository, ttl time.Duration) *Source {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Source{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Load returns the current inputs, refreshing every entry older than the TTL.
// Fetch failures are logged and leave the entry unloaded.
func (s *Source) Load(ctx context.Context) Snapshot {
	now := s.now()

	s.mu.Lock()
	needReminders := !s.reminders.fresh(now, s.ttl)
	needNightMode := !s.nightMode.fresh(now, s.ttl)
	needWater := !s.water.fresh(now, s.ttl)
	s.mu.Unlock()

	var (
		reminders []domain.Reminder
		nightMode *domain.NightMode
		water     *domain.WaterSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	if needReminders {
		g.Go(func() error {
			list, err := s.repo.GetReminders(gctx)
			if err != nil {
				slog.WarnContext(gctx, "failed to load reminders",
					slog.String("error", err.Error()),
				)
				return nil
			}
			if list == nil {
				list = []domain.Reminder{}
			}
			reminders = list
			return nil
		})
	}
	if needNightMode {
		g.Go(func() error {
			nm, err := s.repo.GetNightMode(gctx)
			if err != nil {
				slog.WarnContext(gctx, "failed to load night mode",
					slog.String("error", err.Error()),
				)
				return nil
			}
			if nm != nil {
				if err := nm.Validate(); err != nil {
					slog.WarnContext(gctx, "discarding night mode",
						slog.String("error", err.Error()),
					)
					return nil
				}
			}
			nightMode = nm
			return nil
		})
	}
	if needWater {
		g.Go(func() error {
			ws, err := s.repo.GetWaterSnapshot(gctx)
			if err != nil {
				slog.WarnContext(gctx, "failed to load water snapshot",
					slog.String("error", err.Error()),
				)
				return nil
			}
			if ws != nil {
				if err := ws.Validate(); err != nil {
					slog.WarnContext(gctx, "discarding water snapshot",
						slog.String("error", err.Error()),
					)
					return nil
				}
			}
			water = ws
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if needReminders {
		s.reminders = entry[[]domain.Reminder]{value: reminders, fetchedAt: now, loaded: reminders != nil}
	}
	if needNightMode {
		s.nightMode = entry[*domain.NightMode]{value: nightMode, fetchedAt: now, loaded: nightMode != nil}
	}
	if needWater {
		s.water = entry[*domain.WaterSnapshot]{value: water, fetchedAt: now, loaded: water != nil}
	}

	snap := Snapshot{
		Reminders: s.reminders.value,
		NightMode: s.nightMode.value,
		Water:     s.water.value,
	}
	if snap.NightMode != nil {
		nm := *snap.NightMode
		snap.NightMode = &nm
	}
	if snap.Water != nil {
		ws := *snap.Water
		snap.Water = &ws
	}
	return snap
}

// InvalidateWater forces the next Load to refetch the water snapshot.
func (s *Source) InvalidateWater() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.water.loaded = false
}

// SetDailyGoal forwards the goal update to the backend and invalidates the
// cached water snapshot on success.
func (s *Source) SetDailyGoal(ctx context.Context, goal int64) error {
	if goal <= 0 {
		return domain.ErrInvalidDailyGoal
	}
	if err := s.repo.SetDailyGoal(ctx, goal); err != nil {
		return err
	}
	s.InvalidateWater()
	return nil
}
