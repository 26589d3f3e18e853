package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/repository"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/cooldown"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/goal"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/matcher"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/snapshot"
)

type fakeSource struct {
	mu    sync.Mutex
	snap  snapshot.Snapshot
	goals []int64
	err   error
}

func (f *fakeSource) Load(ctx context.Context) snapshot.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSource) SetDailyGoal(ctx context.Context, g int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.goals = append(f.goals, g)
	return nil
}

func (f *fakeSource) updatedGoals() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.goals...)
}

type fakeNotifier struct {
	mu         sync.Mutex
	permission domain.Permission
	reminders  []string
	hourly     []int
	err        error
	panicOn    string
}

func (f *fakeNotifier) Permission(ctx context.Context) domain.Permission {
	return f.permission
}

func (f *fakeNotifier) EnsurePermission(ctx context.Context) domain.Permission {
	return f.permission
}

func (f *fakeNotifier) FireReminder(ctx context.Context, r domain.Reminder) (bool, error) {
	if r.ID == f.panicOn {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.permission != domain.PermissionGranted {
		return false, nil
	}
	f.reminders = append(f.reminders, r.ID)
	return true, nil
}

func (f *fakeNotifier) FireHourly(ctx context.Context, remainingHours int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.permission != domain.PermissionGranted {
		return false, nil
	}
	f.hourly = append(f.hourly, remainingHours)
	return true, nil
}

func (f *fakeNotifier) reminderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reminders)
}

type fakeRecorder struct {
	records []domain.FireRecord
}

func (f *fakeRecorder) RecordFires(ctx context.Context, records []domain.FireRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeRecorder) Flush(ctx context.Context) error { return nil }

func (f *fakeRecorder) Close() error { return nil }

func everyDay() domain.DaysOfWeek {
	return domain.DaysOfWeek{true, true, true, true, true, true, true}
}

// 2025-01-06 is a Monday.
func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 6, hour, minute, 0, 0, time.UTC)
}

func newTestScheduler(t *testing.T, source SnapshotSource, notifier Notifier, recorder domain.FireRecorder) *Scheduler {
	t.Helper()

	trigger, err := goal.NewTrigger(goal.DefaultSchedule)
	if err != nil {
		t.Fatalf("NewTrigger() error = %v", err)
	}

	return NewScheduler(
		source,
		notifier,
		cooldown.NewGate(repository.NewMemoryDedupStore()),
		matcher.NewMatcher(),
		goal.NewPlanner(goal.DefaultMinPerHour),
		trigger,
		recorder,
		nil,
		Options{TickInterval: time.Minute, Location: time.UTC},
	)
}

func TestEvaluate_ReminderFiresOnceThenSuppressed(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{{ID: "r1", Time: 540, DaysOfWeek: everyDay(), Sound: true, Enabled: true}},
		NightMode: &domain.NightMode{},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionGranted}
	s := newTestScheduler(t, source, notifier, nil)
	ctx := context.Background()

	first := s.Evaluate(ctx, at(9, 0))
	if len(first.Reminders) != 1 || first.Reminders[0].Outcome != domain.OutcomeFired {
		t.Fatalf("first tick reminders = %+v, want one fired", first.Reminders)
	}

	second := s.Evaluate(ctx, at(9, 1))
	if second.Reminders[0].Outcome != domain.OutcomeSuppressed {
		t.Errorf("second tick outcome = %v, want %v", second.Reminders[0].Outcome, domain.OutcomeSuppressed)
	}
	if second.Reminders[0].Reason != ReasonCooldown {
		t.Errorf("second tick reason = %q, want %q", second.Reminders[0].Reason, ReasonCooldown)
	}

	if got := notifier.reminderCount(); got != 1 {
		t.Errorf("notifier received %d fires, want 1", got)
	}
	if s.LastTick() != second {
		t.Error("LastTick() should return the latest evaluation")
	}
}

func TestEvaluate_ReminderSkipReasons(t *testing.T) {
	tests := []struct {
		name       string
		reminder   domain.Reminder
		nightMode  *domain.NightMode
		now        time.Time
		wantReason string
	}{
		{
			name:       "night mode mutes",
			reminder:   domain.Reminder{ID: "r1", Time: 1380, DaysOfWeek: everyDay(), Enabled: true},
			nightMode:  &domain.NightMode{Enabled: true, Start: 1320, End: 420, MuteReminders: true},
			now:        at(23, 0),
			wantReason: matcher.ReasonNightMode.String(),
		},
		{
			name:       "night mode without mute flag",
			reminder:   domain.Reminder{ID: "r1", Time: 1380, DaysOfWeek: everyDay(), Enabled: true},
			nightMode:  &domain.NightMode{Enabled: true, Start: 1320, End: 420, MuteReminders: false},
			now:        at(23, 0),
			wantReason: ReasonShown,
		},
		{
			name:       "day excluded",
			reminder:   domain.Reminder{ID: "r1", Time: 540, DaysOfWeek: domain.DaysOfWeek{false, true, true, true, true, true, true}, Enabled: true},
			nightMode:  &domain.NightMode{},
			now:        at(9, 0),
			wantReason: matcher.ReasonDayExcluded.String(),
		},
		{
			name:       "midnight reminder at last minute of day",
			reminder:   domain.Reminder{ID: "r1", Time: 0, DaysOfWeek: everyDay(), Enabled: true},
			nightMode:  &domain.NightMode{},
			now:        at(23, 59),
			wantReason: matcher.ReasonOutsideTolerance.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{snap: snapshot.Snapshot{
				Reminders: []domain.Reminder{tt.reminder},
				NightMode: tt.nightMode,
			}}
			s := newTestScheduler(t, source, &fakeNotifier{permission: domain.PermissionGranted}, nil)

			result := s.Evaluate(context.Background(), tt.now)
			if len(result.Reminders) != 1 {
				t.Fatalf("got %d reminder outcomes, want 1", len(result.Reminders))
			}
			if got := result.Reminders[0].Reason; got != tt.wantReason {
				t.Errorf("reason = %q, want %q", got, tt.wantReason)
			}
		})
	}
}

func TestEvaluate_MissingInputsSkipPolicies(t *testing.T) {
	water := &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 2000}
	reminders := []domain.Reminder{{ID: "r1", Time: 600, DaysOfWeek: everyDay(), Enabled: true}}

	tests := []struct {
		name            string
		snap            snapshot.Snapshot
		wantReminders   string
		wantHourlyCause string
	}{
		{
			name:            "reminders not loaded",
			snap:            snapshot.Snapshot{NightMode: &domain.NightMode{}, Water: water},
			wantReminders:   ReasonRemindersNotLoaded,
			wantHourlyCause: ReasonShown,
		},
		{
			name:            "night mode not loaded",
			snap:            snapshot.Snapshot{Reminders: reminders, Water: water},
			wantReminders:   ReasonNightModeNotLoaded,
			wantHourlyCause: ReasonNightModeNotLoaded,
		},
		{
			name:            "water not loaded",
			snap:            snapshot.Snapshot{Reminders: reminders, NightMode: &domain.NightMode{}},
			wantReminders:   "",
			wantHourlyCause: ReasonWaterNotLoaded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{permission: domain.PermissionGranted}
			s := newTestScheduler(t, &fakeSource{snap: tt.snap}, notifier, nil)

			result := s.Evaluate(context.Background(), at(10, 0))
			s.Wait()

			if result.RemindersSkipped != tt.wantReminders {
				t.Errorf("RemindersSkipped = %q, want %q", result.RemindersSkipped, tt.wantReminders)
			}
			if result.Hourly.Reason != tt.wantHourlyCause {
				t.Errorf("hourly reason = %q, want %q", result.Hourly.Reason, tt.wantHourlyCause)
			}
		})
	}
}

func TestEvaluate_HourlyUpdatesGoalAndFires(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{},
		NightMode: &domain.NightMode{},
		Water:     &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 2000, CurrentCount: 1900},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionGranted}
	s := newTestScheduler(t, source, notifier, nil)
	ctx := context.Background()

	result := s.Evaluate(ctx, at(18, 0))
	s.Wait()

	h := result.Hourly
	if h.Outcome != domain.OutcomeFired {
		t.Fatalf("hourly outcome = %v (%s), want fired", h.Outcome, h.Reason)
	}
	if h.RemainingHours != 4 || h.NewGoal != 2700 || !h.GoalUpdated {
		t.Errorf("hourly = %+v, want 4 hours and goal 2700", h)
	}
	if goals := source.updatedGoals(); len(goals) != 1 || goals[0] != 2700 {
		t.Errorf("goal updates = %v, want [2700]", goals)
	}
	if len(notifier.hourly) != 1 || notifier.hourly[0] != 4 {
		t.Errorf("hourly fires = %v, want [4]", notifier.hourly)
	}

	again := s.Evaluate(ctx, at(18, 0).Add(30*time.Second))
	if again.Hourly.Outcome != domain.OutcomeSuppressed {
		t.Errorf("repeat hourly outcome = %v, want suppressed", again.Hourly.Outcome)
	}

	notDue := s.Evaluate(ctx, at(18, 1))
	if notDue.Hourly.Reason != ReasonNotScheduled {
		t.Errorf("off-hour reason = %q, want %q", notDue.Hourly.Reason, ReasonNotScheduled)
	}

	next := s.Evaluate(ctx, at(19, 0))
	s.Wait()
	if next.Hourly.Outcome != domain.OutcomeFired {
		t.Errorf("next hour outcome = %v, want fired", next.Hourly.Outcome)
	}
}

func TestEvaluate_HourlyKeepsGoalWhenOnPace(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{},
		NightMode: &domain.NightMode{},
		Water:     &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 2000, CurrentCount: 1500},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionGranted}
	s := newTestScheduler(t, source, notifier, nil)

	result := s.Evaluate(context.Background(), at(21, 0))
	s.Wait()

	if result.Hourly.GoalUpdated {
		t.Error("goal should not be updated when the new goal equals the current one")
	}
	if goals := source.updatedGoals(); len(goals) != 0 {
		t.Errorf("goal updates = %v, want none", goals)
	}
	if len(notifier.hourly) != 1 || notifier.hourly[0] != 1 {
		t.Errorf("hourly fires = %v, want [1]", notifier.hourly)
	}
}

func TestEvaluate_HourlyGates(t *testing.T) {
	tests := []struct {
		name       string
		water      *domain.WaterSnapshot
		nightMode  *domain.NightMode
		now        time.Time
		wantReason string
	}{
		{
			name:       "asleep",
			water:      &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 2000},
			nightMode:  &domain.NightMode{},
			now:        at(23, 0),
			wantReason: ReasonAsleep,
		},
		{
			name:       "night mode",
			water:      &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1380, DailyGoal: 2000},
			nightMode:  &domain.NightMode{Enabled: true, Start: 1260, End: 420, MuteReminders: true},
			now:        at(22, 0),
			wantReason: ReasonNightMode,
		},
		{
			name:       "no hours left still fires",
			water:      &domain.WaterSnapshot{WakeUpTime: 1380, SleepTime: 30, DailyGoal: 2000},
			nightMode:  &domain.NightMode{},
			now:        at(0, 0),
			wantReason: ReasonShown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{snap: snapshot.Snapshot{
				Reminders: []domain.Reminder{},
				NightMode: tt.nightMode,
				Water:     tt.water,
			}}
			s := newTestScheduler(t, source, &fakeNotifier{permission: domain.PermissionGranted}, nil)

			result := s.Evaluate(context.Background(), tt.now)
			s.Wait()

			if result.Hourly.Reason != tt.wantReason {
				t.Errorf("hourly reason = %q, want %q", result.Hourly.Reason, tt.wantReason)
			}
			if goals := source.updatedGoals(); len(goals) != 0 {
				t.Errorf("goal updates = %v, want none", goals)
			}
		})
	}
}

func TestEvaluate_PermissionNotGrantedStillRecordsDedup(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{{ID: "r1", Time: 540, DaysOfWeek: everyDay(), Enabled: true}},
		NightMode: &domain.NightMode{},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionDenied}
	s := newTestScheduler(t, source, notifier, nil)
	ctx := context.Background()

	first := s.Evaluate(ctx, at(9, 0))
	if got := first.Reminders[0]; got.Outcome != domain.OutcomeSkipped || got.Reason != ReasonPermission {
		t.Errorf("first outcome = %+v, want skipped for permission", got)
	}

	second := s.Evaluate(ctx, at(9, 1))
	if got := second.Reminders[0].Outcome; got != domain.OutcomeSuppressed {
		t.Errorf("second outcome = %v, want suppressed", got)
	}
}

func TestEvaluate_FailureIsRetriedAndIsolated(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{
			{ID: "panics", Time: 540, DaysOfWeek: everyDay(), Enabled: true},
			{ID: "r2", Time: 540, DaysOfWeek: everyDay(), Enabled: true},
		},
		NightMode: &domain.NightMode{},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionGranted, panicOn: "panics", err: errors.New("gateway down")}
	s := newTestScheduler(t, source, notifier, nil)
	ctx := context.Background()

	first := s.Evaluate(ctx, at(9, 0))
	if got := first.Reminders[0]; got.Outcome != domain.OutcomeFailed || got.Reason != ReasonPanic {
		t.Errorf("panicking reminder = %+v, want failed with panic", got)
	}
	if got := first.Reminders[1]; got.Outcome != domain.OutcomeFailed || got.Reason != ReasonError {
		t.Errorf("erroring reminder = %+v, want failed with error", got)
	}

	notifier.mu.Lock()
	notifier.err = nil
	notifier.mu.Unlock()

	second := s.Evaluate(ctx, at(9, 1))
	if got := second.Reminders[1].Outcome; got != domain.OutcomeFired {
		t.Errorf("retried reminder outcome = %v, want fired", got)
	}
}

func TestEvaluate_RecordsNotableDecisions(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{
			{ID: "due", Time: 600, DaysOfWeek: everyDay(), Enabled: true},
			{ID: "later", Time: 900, DaysOfWeek: everyDay(), Enabled: true},
			{ID: "off", Time: 600, DaysOfWeek: everyDay(), Enabled: false},
		},
		NightMode: &domain.NightMode{},
		Water:     &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 3000, CurrentCount: 0},
	}}
	recorder := &fakeRecorder{}
	s := newTestScheduler(t, source, &fakeNotifier{permission: domain.PermissionGranted}, recorder)

	result := s.Evaluate(context.Background(), at(10, 0))
	s.Wait()

	if len(recorder.records) != 2 {
		t.Fatalf("recorded %d fires, want 2: %+v", len(recorder.records), recorder.records)
	}

	reminder := recorder.records[0]
	if reminder.Key != "reminder:due" || reminder.Outcome != domain.OutcomeFired || reminder.RunID != result.RunID {
		t.Errorf("reminder record = %+v", reminder)
	}

	hourly := recorder.records[1]
	if hourly.Key != domain.HourlyDedupKey || hourly.RemainingHours != 12 || hourly.NewGoal != 3000 {
		t.Errorf("hourly record = %+v", hourly)
	}
}

func TestPreview_LeavesStateUntouched(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{{ID: "r1", Time: 540, DaysOfWeek: everyDay(), Enabled: true}},
		NightMode: &domain.NightMode{},
		Water:     &domain.WaterSnapshot{WakeUpTime: 420, SleepTime: 1320, DailyGoal: 2000, CurrentCount: 0},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionGranted}
	recorder := &fakeRecorder{}
	s := newTestScheduler(t, source, notifier, recorder)
	ctx := context.Background()

	preview := s.Preview(ctx, at(9, 0).AddDate(0, 0, 7))
	s.Wait()

	if !preview.DryRun {
		t.Error("Preview() result should be marked as dry run")
	}
	if got := preview.Reminders[0]; got.Outcome != domain.OutcomeFired || got.Reason != ReasonDryRun {
		t.Errorf("preview reminder = %+v, want would fire", got)
	}
	if got := preview.Hourly; got.Reason != ReasonDryRun || got.RemainingHours != 13 || got.GoalUpdated {
		t.Errorf("preview hourly = %+v, want would fire with 13 hours and no goal update", got)
	}
	if notifier.reminderCount() != 0 || len(notifier.hourly) != 0 {
		t.Errorf("preview dispatched reminders=%v hourly=%v", notifier.reminders, notifier.hourly)
	}
	if goals := source.updatedGoals(); len(goals) != 0 {
		t.Errorf("preview updated goals %v", goals)
	}
	if len(recorder.records) != 0 {
		t.Errorf("preview recorded %d fires", len(recorder.records))
	}
	if s.LastTick() != nil {
		t.Error("preview should not replace LastTick")
	}

	for day := range 3 {
		result := s.Evaluate(ctx, at(9, 0).AddDate(0, 0, day))
		if got := result.Reminders[0].Outcome; got != domain.OutcomeFired {
			t.Errorf("day %d reminder outcome = %v, want fired", day, got)
		}
	}

	after := s.Preview(ctx, at(9, 1).AddDate(0, 0, 2))
	if got := after.Reminders[0]; got.Outcome != domain.OutcomeSuppressed || got.Reason != ReasonCooldown {
		t.Errorf("preview inside cooldown = %+v, want suppressed", got)
	}
}

func TestEvaluate_FutureDedupValueDoesNotBlock(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{{ID: "r1", Time: 540, DaysOfWeek: everyDay(), Enabled: true}},
		NightMode: &domain.NightMode{},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionGranted}
	s := newTestScheduler(t, source, notifier, nil)
	ctx := context.Background()

	store := repository.NewMemoryDedupStore()
	if err := store.Set(ctx, domain.ReminderDedupKey("r1"), at(9, 0).AddDate(0, 0, 7).UnixMilli()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s.gate = cooldown.NewGate(store)

	for day := 1; day < 7; day++ {
		result := s.Evaluate(ctx, at(9, 0).AddDate(0, 0, day))
		if got := result.Reminders[0].Outcome; got != domain.OutcomeFired {
			t.Errorf("day %d outcome = %v, want fired", day, got)
		}
	}
	if got := notifier.reminderCount(); got != 6 {
		t.Errorf("notifier received %d fires, want 6", got)
	}
}

func TestRun_EvaluatesImmediatelyAndStops(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{{ID: "r1", Time: 540, DaysOfWeek: everyDay(), Enabled: true}},
		NightMode: &domain.NightMode{},
	}}
	notifier := &fakeNotifier{permission: domain.PermissionGranted}
	s := newTestScheduler(t, source, notifier, nil)
	s.now = func() time.Time { return at(9, 0) }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Run(ctx)

	if s.LastTick() == nil {
		t.Fatal("Run() should evaluate once before waiting for the ticker")
	}
	if got := notifier.reminderCount(); got != 1 {
		t.Errorf("notifier received %d fires, want 1", got)
	}
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	source := &fakeSource{snap: snapshot.Snapshot{
		Reminders: []domain.Reminder{},
		NightMode: &domain.NightMode{},
	}}
	trigger, err := goal.NewTrigger(goal.DefaultSchedule)
	if err != nil {
		t.Fatalf("NewTrigger() error = %v", err)
	}

	var (
		mu    sync.Mutex
		ticks int
	)
	s := NewScheduler(
		source,
		&fakeNotifier{permission: domain.PermissionGranted},
		cooldown.NewGate(repository.NewMemoryDedupStore()),
		matcher.NewMatcher(),
		goal.NewPlanner(0),
		trigger,
		nil,
		nil,
		Options{TickInterval: 5 * time.Millisecond, Location: time.UTC},
	)
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		ticks++
		return at(9, 30)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := ticks
		mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only %d evaluations before deadline", n)
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
