//go:build !gcloud

package firerecorder

import (
	"context"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

const measurement = "reminder_fire"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.FireRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "fire recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, fire recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "fire recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
	}, nil
}

func (r *influxDBRecorder) RecordFires(ctx context.Context, records []domain.FireRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, newPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write fire records to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
		return fmt.Errorf("failed to write fire records: %w", err)
	}

	return nil
}

func newPoint(record domain.FireRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	fields := map[string]any{
		"reason":    record.Reason,
		"fired":     record.Outcome == domain.OutcomeFired,
		"evaluated": record.EvaluatedAt.Unix(),
	}
	if record.Source == domain.SourceHourly.String() {
		fields["remaining_hours"] = record.RemainingHours
		fields["previous_goal"] = record.PreviousGoal
		fields["new_goal"] = record.NewGoal
	}

	return influxdb2.NewPoint(
		measurement,
		map[string]string{
			"run_id":  runID,
			"source":  record.Source,
			"key":     record.Key,
			"outcome": record.Outcome.String(),
		},
		fields,
		record.EvaluatedAt,
	)
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
