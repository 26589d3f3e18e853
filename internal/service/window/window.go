package window

import (
	"time"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

// InWindow reports whether now lies in the half-open daily window [start, end).
// A window with start > end wraps past midnight. start == end is empty.
func InWindow(now, start, end int) bool {
	if start <= end {
		return start <= now && now < end
	}
	return now >= start || now < end
}

// MinuteOfDay returns minutes since local midnight in t's location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// NightModeMutes is true when reminders are muted by night mode at minute now.
// A nil configuration never mutes.
func NightModeMutes(nm *domain.NightMode, now int) bool {
	if !nm.Mutes() {
		return false
	}
	return InWindow(now, nm.Start, nm.End)
}

// IsAwake reports whether now lies between wake-up and sleep time.
func IsAwake(ws *domain.WaterSnapshot, now int) bool {
	if ws == nil {
		return false
	}
	return InWindow(now, ws.WakeUpTime, ws.SleepTime)
}
