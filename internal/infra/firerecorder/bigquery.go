//go:build gcloud

package firerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	EvaluatedAt    time.Time `bigquery:"evaluated_at"`
	RunID          string    `bigquery:"run_id"`
	Source         string    `bigquery:"source"`
	Key            string    `bigquery:"key"`
	Outcome        string    `bigquery:"outcome"`
	Reason         string    `bigquery:"reason"`
	RemainingHours int64     `bigquery:"remaining_hours"`
	PreviousGoal   int64     `bigquery:"previous_goal"`
	NewGoal        int64     `bigquery:"new_goal"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.FireRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "fire recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, fire recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, fire recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "fire recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordFires(ctx context.Context, records []domain.FireRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryRecord{
			RecordedAt:     now,
			EvaluatedAt:    record.EvaluatedAt,
			RunID:          record.RunID,
			Source:         record.Source,
			Key:            record.Key,
			Outcome:        record.Outcome.String(),
			Reason:         record.Reason,
			RemainingHours: int64(record.RemainingHours),
			PreviousGoal:   record.PreviousGoal,
			NewGoal:        record.NewGoal,
		})
	}

	// Streaming inserts are best effort; a lost batch only thins the history.
	if err := r.inserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert fire records to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
