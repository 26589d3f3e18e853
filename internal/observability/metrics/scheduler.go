package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	schedulerMeterName = "hydration.scheduler"
)

type SchedulerMetrics struct {
	fires               metric.Int64Counter
	goalUpdates         metric.Int64Counter
	tickDuration        metric.Float64Histogram
	snapshotLoadLatency metric.Float64Histogram
}

func NewSchedulerMetrics() (*SchedulerMetrics, error) {
	meter := otel.Meter(schedulerMeterName)

	fires, err := meter.Int64Counter(
		"hydration_reminder_fires_total",
		metric.WithDescription("Total number of reminder evaluations by outcome"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	goalUpdates, err := meter.Int64Counter(
		"hydration_goal_updates_total",
		metric.WithDescription("Total number of adaptive daily goal updates"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	tickDuration, err := meter.Float64Histogram(
		"hydration_tick_duration_seconds",
		metric.WithDescription("Time spent evaluating one scheduler tick"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	snapshotLoadLatency, err := meter.Float64Histogram(
		"hydration_snapshot_load_duration_seconds",
		metric.WithDescription("Time spent loading backend snapshots"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerMetrics{
		fires:               fires,
		goalUpdates:         goalUpdates,
		tickDuration:        tickDuration,
		snapshotLoadLatency: snapshotLoadLatency,
	}, nil
}

func (m *SchedulerMetrics) RecordFire(ctx context.Context, source, outcome string) {
	m.fires.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("outcome", outcome),
	))
}

func (m *SchedulerMetrics) RecordGoalUpdate(ctx context.Context, outcome string) {
	m.goalUpdates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *SchedulerMetrics) RecordTickDuration(ctx context.Context, duration time.Duration) {
	m.tickDuration.Record(ctx, duration.Seconds())
}

func (m *SchedulerMetrics) RecordSnapshotLoadDuration(ctx context.Context, duration time.Duration) {
	m.snapshotLoadLatency.Record(ctx, duration.Seconds())
}
