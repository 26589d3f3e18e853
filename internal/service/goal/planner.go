package goal

import (
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

// DefaultMinPerHour is the smallest hourly intake the planner will ask for.
const DefaultMinPerHour int64 = 200

// Plan is the outcome of one hourly recomputation.
type Plan struct {
	RemainingHours int
	Remaining      int64
	PerHour        int64
	PreviousGoal   int64
	NewGoal        int64
	// Apply is set only when NewGoal exceeds the current goal.
	Apply bool
	// Skipped is set when no waking hours are left.
	Skipped bool
}

// RemainingHours returns the whole hours left until sleep at minute now.
func RemainingHours(ws *domain.WaterSnapshot, now int) int {
	switch {
	case !ws.SleepCrossesMidnight():
		return floorDiv(ws.SleepTime-now, 60)
	case now >= ws.WakeUpTime:
		return floorDiv(domain.MinutesPerDay-now+ws.SleepTime, 60)
	default:
		return floorDiv(ws.SleepTime-now, 60)
	}
}

type Planner struct {
	minPerHour int64
}

func NewPlanner(minPerHour int64) *Planner {
	if minPerHour <= 0 {
		minPerHour = DefaultMinPerHour
	}
	return &Planner{
		minPerHour: minPerHour,
	}
}

func (p *Planner) Plan(ws *domain.WaterSnapshot, now int) Plan {
	hours := RemainingHours(ws, now)
	plan := Plan{
		RemainingHours: hours,
		PreviousGoal:   ws.DailyGoal,
		NewGoal:        ws.DailyGoal,
	}
	if hours <= 0 {
		plan.Skipped = true
		return plan
	}

	remaining := max(ws.DailyGoal-ws.CurrentCount, 0)
	perHour := max(ceilDiv(remaining, int64(hours)), p.minPerHour)
	newGoal := ws.CurrentCount + perHour*int64(hours)

	plan.Remaining = remaining
	plan.PerHour = perHour
	if newGoal > ws.DailyGoal {
		plan.NewGoal = newGoal
		plan.Apply = true
	}
	return plan
}

// floorDiv rounds toward negative infinity so a past sleep time yields a
// negative hour count rather than zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
