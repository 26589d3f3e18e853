package dispatch

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

const (
	DefaultIcon = "/assets/generated/water-drop-icon.dim_128x128.png"

	ReminderTitle = "💧 Time to Hydrate!"
	ReminderBody  = "Remember to drink water and stay hydrated."

	HourlyTitle = "💧 Hourly Hydration Reminder"
	HourlyTag   = "hourly-water-reminder"
)

// VibrationPattern alternates vibrate and pause durations.
var VibrationPattern = []time.Duration{
	200 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
}

func ReminderPayload(r domain.Reminder, icon string) domain.NotificationPayload {
	return domain.NotificationPayload{
		Source: domain.SourceReminder,
		Title:  ReminderTitle,
		Body:   ReminderBody,
		Icon:   icon,
		Badge:  icon,
		Tag:    r.NotificationTag(),
		Silent: !r.Sound,
	}
}

func HourlyPayload(remainingHours int, icon string) domain.NotificationPayload {
	return domain.NotificationPayload{
		Source: domain.SourceHourly,
		Title:  HourlyTitle,
		Body:   fmt.Sprintf("Time to drink water! %d hours until bedtime.", remainingHours),
		Icon:   icon,
		Badge:  icon,
		Tag:    HourlyTag,
	}
}
