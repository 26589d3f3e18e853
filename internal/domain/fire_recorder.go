package domain

import (
	"context"
	"time"
)

type FireOutcome string

const (
	OutcomeFired      FireOutcome = "fired"
	OutcomeSuppressed FireOutcome = "suppressed"
	OutcomeSkipped    FireOutcome = "skipped"
	OutcomeFailed     FireOutcome = "failed"
)

func (o FireOutcome) String() string {
	return string(o)
}

type FireRecord struct {
	RunID          string
	EvaluatedAt    time.Time
	Source         string
	Key            string
	Outcome        FireOutcome
	Reason         string
	RemainingHours int
	PreviousGoal   int64
	NewGoal        int64
}

type FireRecorder interface {
	RecordFires(ctx context.Context, records []FireRecord) error
	Flush(ctx context.Context) error
	Close() error
}
