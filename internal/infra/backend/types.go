package backend

// Wire types of the hydration backend API. Field names follow the
// backend's camelCase JSON.

type ReminderResponse struct {
	ID         string `json:"id"`
	Time       int    `json:"time"`
	DaysOfWeek []bool `json:"daysOfWeek"`
	Sound      bool   `json:"sound"`
	Vibration  bool   `json:"vibration"`
	AlertType  string `json:"alertType"`
	Enabled    bool   `json:"enabled"`
}

type RemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
}

type NightModeResponse struct {
	Enabled       bool `json:"enabled"`
	StartTime     int  `json:"startTime"`
	EndTime       int  `json:"endTime"`
	MuteReminders bool `json:"muteReminders"`
}

// ProgressResponse carries the water snapshot. Wake-up and sleep times are
// unset until the user completes onboarding.
type ProgressResponse struct {
	WakeUpTime   *int   `json:"wakeUpTime"`
	SleepTime    *int   `json:"sleepTime"`
	DailyGoal    int64  `json:"dailyGoal"`
	CurrentCount *int64 `json:"currentCount"`
}

type SetGoalRequest struct {
	Goal int64 `json:"goal"`
}
