package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/cooldown"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/goal"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/matcher"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/snapshot"
)

const (
	DefaultTickInterval      = 60 * time.Second
	DefaultGoalUpdateTimeout = 10 * time.Second
)

type SnapshotSource interface {
	Load(ctx context.Context) snapshot.Snapshot
	SetDailyGoal(ctx context.Context, goal int64) error
}

type Notifier interface {
	// Permission reads the current state without prompting.
	Permission(ctx context.Context) domain.Permission
	EnsurePermission(ctx context.Context) domain.Permission
	FireReminder(ctx context.Context, r domain.Reminder) (bool, error)
	FireHourly(ctx context.Context, remainingHours int) (bool, error)
}

type Options struct {
	TickInterval      time.Duration
	GoalUpdateTimeout time.Duration
	// Location is the wall clock the windows are evaluated in.
	Location *time.Location
}

type Scheduler struct {
	source   SnapshotSource
	notifier Notifier
	gate     *cooldown.Gate
	matcher  *matcher.Matcher
	planner  *goal.Planner
	trigger  *goal.Trigger
	recorder domain.FireRecorder
	metrics  *metrics.SchedulerMetrics

	tickInterval      time.Duration
	goalUpdateTimeout time.Duration
	location          *time.Location
	now               func() time.Time

	evalMu      sync.Mutex
	goalUpdates sync.WaitGroup

	mu         sync.RWMutex
	lastTick   *TickResult
	lastTickAt time.Time
}

func NewScheduler(
	source SnapshotSource,
	notifier Notifier,
	gate *cooldown.Gate,
	reminderMatcher *matcher.Matcher,
	goalPlanner *goal.Planner,
	hourlyTrigger *goal.Trigger,
	recorder domain.FireRecorder,
	schedulerMetrics *metrics.SchedulerMetrics,
	opts Options,
) *Scheduler {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.GoalUpdateTimeout <= 0 {
		opts.GoalUpdateTimeout = DefaultGoalUpdateTimeout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Scheduler{
		source:            source,
		notifier:          notifier,
		gate:              gate,
		matcher:           reminderMatcher,
		planner:           goalPlanner,
		trigger:           hourlyTrigger,
		recorder:          recorder,
		metrics:           schedulerMetrics,
		tickInterval:      opts.TickInterval,
		goalUpdateTimeout: opts.GoalUpdateTimeout,
		location:          opts.Location,
		now:               time.Now,
	}
}

// Run evaluates once immediately and then on every tick until ctx is
// cancelled. It waits for in-flight goal updates before returning.
func (s *Scheduler) Run(ctx context.Context) {
	slog.InfoContext(ctx, "scheduler started",
		slog.Duration("tick_interval", s.tickInterval),
		slog.String("hourly_schedule", s.trigger.Expr()),
		slog.String("location", s.location.String()),
	)

	s.Evaluate(ctx, s.now())

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "scheduler stopping")
			s.goalUpdates.Wait()
			return
		case <-ticker.C:
			s.Evaluate(ctx, s.now())
		}
	}
}

// Wait blocks until every goal update started so far has finished.
func (s *Scheduler) Wait() {
	s.goalUpdates.Wait()
}

func (s *Scheduler) LastTick() *TickResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTick
}

// LastTickAt is the wall-clock time the last evaluation finished, whatever
// virtual time it evaluated.
func (s *Scheduler) LastTickAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTickAt
}

func (s *Scheduler) TickInterval() time.Duration {
	return s.tickInterval
}

// NextHourly returns the next scheduled hourly evaluation after now.
func (s *Scheduler) NextHourly(now time.Time) (time.Time, error) {
	return s.trigger.Next(now.In(s.location))
}

func (s *Scheduler) setLastTick(result *TickResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTick = result
	s.lastTickAt = s.now()
}
