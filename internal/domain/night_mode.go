package domain

import "fmt"

type NightMode struct {
	Enabled       bool
	Start         int
	End           int
	MuteReminders bool
}

func (n *NightMode) Validate() error {
	if !ValidMinuteOfDay(n.Start) || !ValidMinuteOfDay(n.End) {
		return fmt.Errorf("%w: window %d-%d out of range", ErrInvalidNightMode, n.Start, n.End)
	}
	return nil
}

// Mutes reports whether the configuration silences reminders at all.
// Whether the current minute falls inside the window is decided by the caller.
func (n *NightMode) Mutes() bool {
	return n != nil && n.Enabled && n.MuteReminders
}
