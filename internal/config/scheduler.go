package config

import (
	"os"
	"strconv"
	"time"
)

const (
	tickIntervalEnv      = "SCHEDULER_TICK_INTERVAL"
	hourlyScheduleEnv    = "SCHEDULER_HOURLY_SCHEDULE"
	minIntakePerHourEnv  = "SCHEDULER_MIN_INTAKE_PER_HOUR"
	snapshotTTLEnv       = "SCHEDULER_SNAPSHOT_TTL"
	goalUpdateTimeoutEnv = "SCHEDULER_GOAL_UPDATE_TIMEOUT"
	locationEnv          = "SCHEDULER_LOCATION"

	defaultTickInterval      = 60 * time.Second
	defaultHourlySchedule    = "0 * * * *"
	defaultMinIntakePerHour  = 200
	defaultSnapshotTTL       = 60 * time.Second
	defaultGoalUpdateTimeout = 10 * time.Second
)

type SchedulerConfig struct {
	TickInterval      time.Duration
	HourlySchedule    string
	MinIntakePerHour  int64
	SnapshotTTL       time.Duration
	GoalUpdateTimeout time.Duration
	Location          *time.Location
}

func LoadSchedulerConfig() (*SchedulerConfig, error) {
	schedule := os.Getenv(hourlyScheduleEnv)
	if schedule == "" {
		schedule = defaultHourlySchedule
	}

	minIntake := int64(defaultMinIntakePerHour)
	if v := os.Getenv(minIntakePerHourEnv); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			minIntake = parsed
		}
	}

	location := time.Local
	if name := os.Getenv(locationEnv); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, ErrInvalidLocation
		}
		location = loc
	}

	return &SchedulerConfig{
		TickInterval:      durationEnv(tickIntervalEnv, defaultTickInterval),
		HourlySchedule:    schedule,
		MinIntakePerHour:  minIntake,
		SnapshotTTL:       durationEnv(snapshotTTLEnv, defaultSnapshotTTL),
		GoalUpdateTimeout: durationEnv(goalUpdateTimeoutEnv, defaultGoalUpdateTimeout),
		Location:          location,
	}, nil
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
