package domain

import "errors"

var (
	ErrInvalidReminder      = errors.New("invalid reminder")
	ErrInvalidNightMode     = errors.New("invalid night mode")
	ErrInvalidWaterSnapshot = errors.New("invalid water snapshot")
	ErrSnapshotIncomplete   = errors.New("snapshot incomplete")
	ErrInvalidDailyGoal     = errors.New("daily goal must be positive")
	ErrInvalidDedupValue    = errors.New("invalid dedup value")
	ErrPermissionDenied     = errors.New("notification permission not granted")
	ErrNotificationNotFound = errors.New("notification not found")
)
