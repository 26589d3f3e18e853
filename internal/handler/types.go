package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/scheduler"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ReminderOutcomeResponse struct {
	ReminderID string `json:"reminder_id"`
	Outcome    string `json:"outcome"`
	Reason     string `json:"reason"`
	Error      string `json:"error,omitempty"`
}

type HourlyOutcomeResponse struct {
	Outcome        string `json:"outcome"`
	Reason         string `json:"reason"`
	Error          string `json:"error,omitempty"`
	RemainingHours int    `json:"remaining_hours"`
	PreviousGoal   int64  `json:"previous_goal,omitempty"`
	NewGoal        int64  `json:"new_goal,omitempty"`
	GoalUpdated    bool   `json:"goal_updated"`
}

type TickResponse struct {
	RunID            string                    `json:"run_id"`
	EvaluatedAt      time.Time                 `json:"evaluated_at"`
	MinuteOfDay      int                       `json:"minute_of_day"`
	NightMuted       bool                      `json:"night_muted"`
	DryRun           bool                      `json:"dry_run"`
	Permission       string                    `json:"permission"`
	RemindersSkipped string                    `json:"reminders_skipped,omitempty"`
	Reminders        []ReminderOutcomeResponse `json:"reminders"`
	Hourly           HourlyOutcomeResponse     `json:"hourly"`
	FiredCount       int                       `json:"fired_count"`
	SuppressedCount  int                       `json:"suppressed_count"`
	SkippedCount     int                       `json:"skipped_count"`
	FailedCount      int                       `json:"failed_count"`
	DurationMs       int64                     `json:"duration_ms"`
}

type StatusResponse struct {
	Permission        string        `json:"permission"`
	OpenNotifications []string      `json:"open_notifications"`
	TickInterval      string        `json:"tick_interval"`
	NextHourly        *time.Time    `json:"next_hourly,omitempty"`
	LastTick          *TickResponse `json:"last_tick,omitempty"`
}

type ClickResponse struct {
	Tag    string `json:"tag"`
	Status string `json:"status"`
}

func toTickResponse(r *scheduler.TickResult) *TickResponse {
	if r == nil {
		return nil
	}

	fired, suppressed, skipped, failed := r.Counts()

	reminders := make([]ReminderOutcomeResponse, 0, len(r.Reminders))
	for _, o := range r.Reminders {
		reminders = append(reminders, ReminderOutcomeResponse{
			ReminderID: o.ReminderID,
			Outcome:    o.Outcome.String(),
			Reason:     o.Reason,
			Error:      o.Error,
		})
	}

	return &TickResponse{
		RunID:            r.RunID,
		EvaluatedAt:      r.EvaluatedAt,
		MinuteOfDay:      r.MinuteOfDay,
		NightMuted:       r.NightMuted,
		DryRun:           r.DryRun,
		Permission:       r.Permission.String(),
		RemindersSkipped: r.RemindersSkipped,
		Reminders:        reminders,
		Hourly: HourlyOutcomeResponse{
			Outcome:        r.Hourly.Outcome.String(),
			Reason:         r.Hourly.Reason,
			Error:          r.Hourly.Error,
			RemainingHours: r.Hourly.RemainingHours,
			PreviousGoal:   r.Hourly.PreviousGoal,
			NewGoal:        r.Hourly.NewGoal,
			GoalUpdated:    r.Hourly.GoalUpdated,
		},
		FiredCount:      fired,
		SuppressedCount: suppressed,
		SkippedCount:    skipped,
		FailedCount:     failed,
		DurationMs:      r.Duration.Milliseconds(),
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}
