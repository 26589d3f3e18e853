package firerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.FireRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordFires(_ context.Context, _ []domain.FireRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
