package scheduler

import (
	"time"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

const (
	ReasonNotScheduled       = "not_scheduled"
	ReasonRemindersNotLoaded = "reminders_not_loaded"
	ReasonNightModeNotLoaded = "night_mode_not_loaded"
	ReasonWaterNotLoaded     = "water_not_loaded"
	ReasonAsleep             = "asleep"
	ReasonNightMode          = "night_mode"
	ReasonCooldown           = "cooldown"
	ReasonShown              = "shown"
	ReasonPermission         = "permission_not_granted"
	ReasonError              = "error"
	ReasonPanic              = "panic"
	// ReasonDryRun marks a preview decision that would have fired.
	ReasonDryRun = "dry_run"
)

type ReminderOutcome struct {
	ReminderID string
	Outcome    domain.FireOutcome
	Reason     string
	Error      string
}

type HourlyOutcome struct {
	Outcome        domain.FireOutcome
	Reason         string
	Error          string
	RemainingHours int
	PreviousGoal   int64
	NewGoal        int64
	GoalUpdated    bool
}

// TickResult describes every decision taken in one evaluation.
type TickResult struct {
	RunID       string
	EvaluatedAt time.Time
	MinuteOfDay int
	NightMuted  bool
	Permission  domain.Permission
	// DryRun is set for previews; nothing was dispatched or recorded.
	DryRun bool
	// RemindersSkipped is set when the custom-reminder policy did not run.
	RemindersSkipped string
	Reminders        []ReminderOutcome
	Hourly           HourlyOutcome
	Duration         time.Duration
}

func (r *TickResult) Counts() (fired, suppressed, skipped, failed int) {
	for _, o := range r.Reminders {
		switch o.Outcome {
		case domain.OutcomeFired:
			fired++
		case domain.OutcomeSuppressed:
			suppressed++
		case domain.OutcomeSkipped:
			skipped++
		case domain.OutcomeFailed:
			failed++
		}
	}
	return fired, suppressed, skipped, failed
}
