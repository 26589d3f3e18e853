package domain

import "fmt"

type WaterSnapshot struct {
	WakeUpTime   int
	SleepTime    int
	DailyGoal    int64
	CurrentCount int64
}

func (w *WaterSnapshot) Validate() error {
	if !ValidMinuteOfDay(w.WakeUpTime) || !ValidMinuteOfDay(w.SleepTime) {
		return fmt.Errorf("%w: wake/sleep %d-%d out of range", ErrInvalidWaterSnapshot, w.WakeUpTime, w.SleepTime)
	}
	if w.DailyGoal < 0 || w.CurrentCount < 0 {
		return fmt.Errorf("%w: negative goal or count", ErrInvalidWaterSnapshot)
	}
	return nil
}

// SleepCrossesMidnight is true unless wake-up strictly precedes sleep on the same day.
func (w *WaterSnapshot) SleepCrossesMidnight() bool {
	return w.WakeUpTime >= w.SleepTime
}
