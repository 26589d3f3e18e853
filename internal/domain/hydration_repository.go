package domain

import "context"

//go:generate mockgen -source=hydration_repository.go -destination=hydration_repository_mock.go -package=domain

// HydrationRepository is the read side of the hydration backend plus the one
// mutation the scheduler issues.
type HydrationRepository interface {
	GetReminders(ctx context.Context) ([]Reminder, error)
	GetNightMode(ctx context.Context) (*NightMode, error)
	GetWaterSnapshot(ctx context.Context) (*WaterSnapshot, error)
	SetDailyGoal(ctx context.Context, goal int64) error
}
