package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/goal"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/matcher"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/snapshot"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/window"
)

// Evaluate runs both policies once for the wall-clock time now. Evaluations
// never overlap; nothing inside a tick is allowed to abort the others.
func (s *Scheduler) Evaluate(ctx context.Context, now time.Time) *TickResult {
	return s.evaluate(ctx, now, false)
}

// Preview reports what an evaluation at now would decide. It reads the
// cool-down state but never dispatches, records a fire, updates the goal or
// replaces LastTick, so arbitrary times can be inspected safely.
func (s *Scheduler) Preview(ctx context.Context, now time.Time) *TickResult {
	return s.evaluate(ctx, now, true)
}

func (s *Scheduler) evaluate(ctx context.Context, now time.Time, dryRun bool) *TickResult {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()

	started := time.Now()
	now = now.In(s.location)
	runID := uuid.NewString()

	ctx, span := tracing.StartTickSpan(ctx, runID, now)
	defer span.End()

	loadStarted := time.Now()
	snap := s.source.Load(ctx)
	if s.metrics != nil && !dryRun {
		s.metrics.RecordSnapshotLoadDuration(ctx, time.Since(loadStarted))
	}

	minute := window.MinuteOfDay(now)
	// One night-mode evaluation shared by both policies.
	nightMuted := window.NightModeMutes(snap.NightMode, minute)

	result := &TickResult{
		RunID:       runID,
		EvaluatedAt: now,
		MinuteOfDay: minute,
		NightMuted:  nightMuted,
		DryRun:      dryRun,
	}
	if dryRun {
		result.Permission = s.notifier.Permission(ctx)
	} else {
		result.Permission = s.notifier.EnsurePermission(ctx)
	}

	s.evaluateReminders(ctx, now, snap, nightMuted, result)
	result.Hourly = s.evaluateHourly(ctx, now, snap, nightMuted, dryRun)
	result.Duration = time.Since(started)

	fired, suppressed, skipped, failed := result.Counts()
	slog.DebugContext(ctx, "tick evaluated",
		slog.String("run_id", runID),
		slog.Bool("dry_run", dryRun),
		slog.Int("minute_of_day", minute),
		slog.Bool("night_muted", nightMuted),
		slog.Int("fired", fired),
		slog.Int("suppressed", suppressed),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
		slog.String("hourly_outcome", result.Hourly.Outcome.String()),
		slog.String("hourly_reason", result.Hourly.Reason),
		slog.Duration("duration", result.Duration),
	)

	if dryRun {
		return result
	}

	if s.metrics != nil {
		s.metrics.RecordTickDuration(ctx, result.Duration)
	}

	s.record(ctx, result)
	s.setLastTick(result)

	return result
}

func (s *Scheduler) evaluateReminders(
	ctx context.Context,
	now time.Time,
	snap snapshot.Snapshot,
	nightMuted bool,
	result *TickResult,
) {
	ctx, span := tracing.StartPolicySpan(ctx, "reminders")
	defer span.End()

	switch {
	case !snap.RemindersLoaded():
		result.RemindersSkipped = ReasonRemindersNotLoaded
	case snap.NightMode == nil:
		result.RemindersSkipped = ReasonNightModeNotLoaded
	}
	if result.RemindersSkipped != "" {
		slog.DebugContext(ctx, "custom reminders skipped",
			slog.String("reason", result.RemindersSkipped),
		)
		return
	}

	result.Reminders = make([]ReminderOutcome, 0, len(snap.Reminders))
	for _, r := range snap.Reminders {
		outcome := s.evaluateReminder(ctx, now, r, nightMuted, result.DryRun)
		result.Reminders = append(result.Reminders, outcome)

		if s.metrics != nil && !result.DryRun && notable(outcome) {
			s.metrics.RecordFire(ctx, domain.SourceReminder.String(), outcome.Outcome.String())
		}
	}

	fired, suppressed, skipped, failed := result.Counts()
	tracing.RecordPolicyResult(span, fired, suppressed, skipped, failed)
}

func (s *Scheduler) evaluateReminder(
	ctx context.Context,
	now time.Time,
	r domain.Reminder,
	nightMuted bool,
	dryRun bool,
) (outcome ReminderOutcome) {
	outcome = ReminderOutcome{ReminderID: r.ID}

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic while evaluating reminder",
				slog.String("reminder_id", r.ID),
				slog.String("panic", fmt.Sprint(rec)),
			)
			outcome.Outcome = domain.OutcomeFailed
			outcome.Reason = ReasonPanic
			outcome.Error = fmt.Sprint(rec)
		}
	}()

	decision := s.matcher.Match(r, now, nightMuted)
	if !decision.Match {
		if decision.Reason == matcher.ReasonInvalid {
			slog.WarnContext(ctx, "skipping invalid reminder",
				slog.String("reminder_id", r.ID),
				slog.Int("time", r.Time),
				slog.Int("days_of_week", len(r.DaysOfWeek)),
			)
		}
		outcome.Outcome = domain.OutcomeSkipped
		outcome.Reason = decision.Reason.String()
		return outcome
	}

	if dryRun {
		outcome.Outcome, outcome.Reason, outcome.Error = s.previewGate(ctx, r.DedupKey(), now, domain.ReminderCooldown)
		return outcome
	}

	var shown bool
	fired, err := s.gate.Fire(ctx, r.DedupKey(), now, domain.ReminderCooldown, func(ctx context.Context) error {
		var err error
		shown, err = s.notifier.FireReminder(ctx, r)
		return err
	})

	switch {
	case err != nil && !fired:
		slog.ErrorContext(ctx, "failed to fire reminder",
			slog.String("reminder_id", r.ID),
			slog.String("error", err.Error()),
		)
		outcome.Outcome = domain.OutcomeFailed
		outcome.Reason = ReasonError
		outcome.Error = err.Error()
		return outcome
	case err != nil:
		// Shown but not recorded; the next tick may repeat it.
		slog.WarnContext(ctx, "reminder fired without dedup record",
			slog.String("reminder_id", r.ID),
			slog.String("error", err.Error()),
		)
	case !fired:
		outcome.Outcome = domain.OutcomeSuppressed
		outcome.Reason = ReasonCooldown
		return outcome
	}

	outcome.Outcome, outcome.Reason = shownOutcome(shown)
	return outcome
}

func (s *Scheduler) evaluateHourly(
	ctx context.Context,
	now time.Time,
	snap snapshot.Snapshot,
	nightMuted bool,
	dryRun bool,
) (outcome HourlyOutcome) {
	if !s.trigger.Due(now) {
		return HourlyOutcome{Outcome: domain.OutcomeSkipped, Reason: ReasonNotScheduled}
	}

	ctx, span := tracing.StartPolicySpan(ctx, "hourly")
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic while evaluating hourly reminder",
				slog.String("panic", fmt.Sprint(rec)),
			)
			outcome = HourlyOutcome{Outcome: domain.OutcomeFailed, Reason: ReasonPanic, Error: fmt.Sprint(rec)}
		}
		if s.metrics != nil && !dryRun {
			s.metrics.RecordFire(ctx, domain.SourceHourly.String(), outcome.Outcome.String())
		}
	}()

	minute := window.MinuteOfDay(now)
	switch {
	case snap.Water == nil:
		return HourlyOutcome{Outcome: domain.OutcomeSkipped, Reason: ReasonWaterNotLoaded}
	case snap.NightMode == nil:
		return HourlyOutcome{Outcome: domain.OutcomeSkipped, Reason: ReasonNightModeNotLoaded}
	case !window.IsAwake(snap.Water, minute):
		return HourlyOutcome{Outcome: domain.OutcomeSkipped, Reason: ReasonAsleep}
	case nightMuted:
		return HourlyOutcome{Outcome: domain.OutcomeSkipped, Reason: ReasonNightMode}
	}

	if dryRun {
		outcome.Outcome, outcome.Reason, outcome.Error = s.previewGate(ctx, domain.HourlyDedupKey, now, domain.HourlyCooldown)
		if outcome.Outcome == domain.OutcomeFired {
			plan := s.planner.Plan(snap.Water, minute)
			outcome.RemainingHours = plan.RemainingHours
			outcome.PreviousGoal = plan.PreviousGoal
			outcome.NewGoal = plan.NewGoal
		}
		return outcome
	}

	var (
		plan  goal.Plan
		shown bool
	)
	fired, err := s.gate.Fire(ctx, domain.HourlyDedupKey, now, domain.HourlyCooldown, func(ctx context.Context) error {
		plan = s.planner.Plan(snap.Water, minute)
		if plan.Apply {
			s.updateGoal(ctx, plan)
		}

		var err error
		shown, err = s.notifier.FireHourly(ctx, plan.RemainingHours)
		return err
	})

	outcome = HourlyOutcome{
		RemainingHours: plan.RemainingHours,
		PreviousGoal:   plan.PreviousGoal,
		NewGoal:        plan.NewGoal,
		GoalUpdated:    plan.Apply,
	}

	switch {
	case err != nil && !fired:
		slog.ErrorContext(ctx, "failed to fire hourly reminder",
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		outcome.Outcome = domain.OutcomeFailed
		outcome.Reason = ReasonError
		outcome.Error = err.Error()
		return outcome
	case err != nil:
		slog.WarnContext(ctx, "hourly reminder fired without dedup record",
			slog.String("error", err.Error()),
		)
	case !fired:
		outcome.Outcome = domain.OutcomeSuppressed
		outcome.Reason = ReasonCooldown
		return outcome
	}

	outcome.Outcome, outcome.Reason = shownOutcome(shown)

	slog.InfoContext(ctx, "hourly reminder evaluated",
		slog.Int("remaining_hours", plan.RemainingHours),
		slog.Int64("previous_goal", plan.PreviousGoal),
		slog.Int64("new_goal", plan.NewGoal),
		slog.Bool("goal_updated", plan.Apply),
		slog.Bool("shown", shown),
	)

	return outcome
}

// updateGoal sends the goal update without blocking the tick. The update
// outlives the tick context but is bounded by goalUpdateTimeout.
func (s *Scheduler) updateGoal(ctx context.Context, plan goal.Plan) {
	s.goalUpdates.Go(func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.goalUpdateTimeout)
		defer cancel()

		if err := s.source.SetDailyGoal(ctx, plan.NewGoal); err != nil {
			slog.ErrorContext(ctx, "failed to update daily goal",
				slog.Int64("previous_goal", plan.PreviousGoal),
				slog.Int64("new_goal", plan.NewGoal),
				slog.String("error", err.Error()),
			)
			if s.metrics != nil {
				s.metrics.RecordGoalUpdate(ctx, "failed")
			}
			return
		}

		slog.InfoContext(ctx, "daily goal updated",
			slog.Int64("previous_goal", plan.PreviousGoal),
			slog.Int64("new_goal", plan.NewGoal),
			slog.Int("remaining_hours", plan.RemainingHours),
			slog.Int64("per_hour", plan.PerHour),
		)
		if s.metrics != nil {
			s.metrics.RecordGoalUpdate(ctx, "success")
		}
	})
}

// previewGate maps a read-only cool-down check to the outcome a real
// evaluation would most likely produce.
func (s *Scheduler) previewGate(ctx context.Context, key string, now time.Time, cooldown time.Duration) (domain.FireOutcome, string, string) {
	due, err := s.gate.Due(ctx, key, now, cooldown)
	switch {
	case err != nil:
		return domain.OutcomeFailed, ReasonError, err.Error()
	case !due:
		return domain.OutcomeSuppressed, ReasonCooldown, ""
	}
	return domain.OutcomeFired, ReasonDryRun, ""
}

// shownOutcome maps a recorded fire to its outcome. A fire that was recorded
// but not displayed because permission is missing counts as skipped.
func shownOutcome(shown bool) (domain.FireOutcome, string) {
	if shown {
		return domain.OutcomeFired, ReasonShown
	}
	return domain.OutcomeSkipped, ReasonPermission
}

// notable filters out the per-minute non-matches so only decisions about a
// due reminder reach metrics and the fire history.
func notable(o ReminderOutcome) bool {
	switch matcher.Reason(o.Reason) {
	case matcher.ReasonDisabled, matcher.ReasonDayExcluded, matcher.ReasonOutsideTolerance:
		return false
	}
	return true
}
