package matcher

import (
	"time"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/window"
)

// Tolerance is the number of minutes on either side of a reminder's time that
// still count as a match. The band does not wrap past midnight.
const Tolerance = 1

type Reason string

const (
	ReasonMatched          Reason = "matched"
	ReasonDisabled         Reason = "disabled"
	ReasonInvalid          Reason = "invalid"
	ReasonDayExcluded      Reason = "day_excluded"
	ReasonNightMode        Reason = "night_mode"
	ReasonOutsideTolerance Reason = "outside_tolerance"
)

func (r Reason) String() string {
	return string(r)
}

type Decision struct {
	Match  bool
	Reason Reason
}

// DayIndex maps a time.Weekday onto the Monday-first reminder mask.
func DayIndex(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

type Matcher struct {
	tolerance int
}

func NewMatcher() *Matcher {
	return &Matcher{
		tolerance: Tolerance,
	}
}

// Match decides whether r is due at now. nightMuted is the tick-wide result of
// the night-mode window check.
func (m *Matcher) Match(r domain.Reminder, now time.Time, nightMuted bool) Decision {
	if !r.Enabled {
		return Decision{Reason: ReasonDisabled}
	}
	if err := r.Validate(); err != nil {
		return Decision{Reason: ReasonInvalid}
	}

	if !r.DaysOfWeek[DayIndex(now.Weekday())] {
		return Decision{Reason: ReasonDayExcluded}
	}

	diff := window.MinuteOfDay(now) - r.Time
	if diff < 0 {
		diff = -diff
	}
	if diff > m.tolerance {
		return Decision{Reason: ReasonOutsideTolerance}
	}

	// Checked last so the reason only reports reminders night mode actually silenced.
	if nightMuted {
		return Decision{Reason: ReasonNightMode}
	}

	return Decision{Match: true, Reason: ReasonMatched}
}
