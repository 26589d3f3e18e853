package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=dedup_store.go -destination=dedup_store_mock.go -package=domain

const (
	reminderDedupKeyPrefix = "reminder:"

	// HourlyDedupKey is the singleton key of the hourly auto-reminder.
	HourlyDedupKey = "hourly"

	ReminderCooldown = 120 * time.Second
	HourlyCooldown   = 55 * time.Minute
)

func ReminderDedupKey(reminderID string) string {
	return reminderDedupKeyPrefix + reminderID
}

// DedupStore persists the last fire timestamp of a notification key in
// milliseconds since the Unix epoch.
type DedupStore interface {
	// Get returns found=false when the key has never fired.
	// A stored value that cannot be parsed yields ErrInvalidDedupValue.
	Get(ctx context.Context, key string) (firedAtMillis int64, found bool, err error)
	Set(ctx context.Context, key string, firedAtMillis int64) error
}
