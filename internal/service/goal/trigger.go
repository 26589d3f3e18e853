package goal

import (
	"fmt"
	"time"

	"github.com/adhocore/gronx"
)

// DefaultSchedule fires at the top of every hour.
const DefaultSchedule = "0 * * * *"

// Trigger decides which ticks evaluate the hourly path.
type Trigger struct {
	expr string
}

func NewTrigger(expr string) (*Trigger, error) {
	if expr == "" {
		expr = DefaultSchedule
	}
	if !gronx.IsValid(expr) {
		return nil, fmt.Errorf("invalid hourly schedule %q", expr)
	}
	return &Trigger{expr: expr}, nil
}

func (t *Trigger) Expr() string {
	return t.expr
}

// Due reports whether the wall-clock minute containing now matches the schedule.
func (t *Trigger) Due(now time.Time) bool {
	ref := now.Truncate(time.Minute)
	next, err := gronx.NextTickAfter(t.expr, ref, true)
	if err != nil {
		return false
	}
	return next.Equal(ref)
}

// Next returns the first scheduled minute strictly after now.
func (t *Trigger) Next(now time.Time) (time.Time, error) {
	return gronx.NextTickAfter(t.expr, now, false)
}
