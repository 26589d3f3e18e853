package scheduler

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

func (s *Scheduler) record(ctx context.Context, result *TickResult) {
	if s.recorder == nil {
		return
	}

	records := fireRecords(result)
	if len(records) == 0 {
		return
	}

	if err := s.recorder.RecordFires(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record fire history",
			slog.String("run_id", result.RunID),
			slog.Int("record_count", len(records)),
			slog.String("error", err.Error()),
		)
	}
}

func fireRecords(result *TickResult) []domain.FireRecord {
	records := make([]domain.FireRecord, 0, len(result.Reminders)+1)

	for _, o := range result.Reminders {
		if !notable(o) {
			continue
		}
		records = append(records, domain.FireRecord{
			RunID:       result.RunID,
			EvaluatedAt: result.EvaluatedAt,
			Source:      domain.SourceReminder.String(),
			Key:         domain.ReminderDedupKey(o.ReminderID),
			Outcome:     o.Outcome,
			Reason:      o.Reason,
		})
	}

	if result.Hourly.Reason != ReasonNotScheduled {
		h := result.Hourly
		records = append(records, domain.FireRecord{
			RunID:          result.RunID,
			EvaluatedAt:    result.EvaluatedAt,
			Source:         domain.SourceHourly.String(),
			Key:            domain.HourlyDedupKey,
			Outcome:        h.Outcome,
			Reason:         h.Reason,
			RemainingHours: h.RemainingHours,
			PreviousGoal:   h.PreviousGoal,
			NewGoal:        h.NewGoal,
		})
	}

	return records
}
