package domain

import (
	"fmt"
	"strings"
)

const (
	MinutesPerDay = 1440
	DaysPerWeek   = 7
)

// AlertType is the channel a reminder was configured with.
type AlertType string

const (
	AlertTypeNotification AlertType = "notification"
	AlertTypeSound        AlertType = "sound"
	AlertTypeVibration    AlertType = "vibration"
)

func (a AlertType) String() string {
	return string(a)
}

// ParseAlertType maps unknown or empty values to AlertTypeNotification.
func ParseAlertType(s string) AlertType {
	switch AlertType(strings.ToLower(strings.TrimSpace(s))) {
	case AlertTypeSound:
		return AlertTypeSound
	case AlertTypeVibration:
		return AlertTypeVibration
	default:
		return AlertTypeNotification
	}
}

// DaysOfWeek is the per-day enable mask of a reminder.
// Index 0 is Monday and index 6 is Sunday.
type DaysOfWeek []bool

type Reminder struct {
	ID         string
	Time       int // minutes since midnight
	DaysOfWeek DaysOfWeek
	Sound      bool
	Vibration  bool
	AlertType  AlertType
	Enabled    bool
}

func (r *Reminder) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidReminder)
	}
	if len(r.DaysOfWeek) != DaysPerWeek {
		return fmt.Errorf("%w: days of week mask has %d entries", ErrInvalidReminder, len(r.DaysOfWeek))
	}
	if !ValidMinuteOfDay(r.Time) {
		return fmt.Errorf("%w: time %d out of range", ErrInvalidReminder, r.Time)
	}
	return nil
}

func (r *Reminder) DedupKey() string {
	return ReminderDedupKey(r.ID)
}

func (r *Reminder) NotificationTag() string {
	return "reminder-" + r.ID
}

func ValidMinuteOfDay(m int) bool {
	return m >= 0 && m < MinutesPerDay
}
