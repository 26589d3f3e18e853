package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required by the redis dedup store and focus events")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidRedisTLS      = errors.New("REDIS_TLS must be a boolean")
	ErrBackendURLMissing    = errors.New("HYDRATION_BACKEND_URL is required")
	ErrInvalidLocation      = errors.New("SCHEDULER_LOCATION must be a valid IANA time zone")
	ErrInvalidSchedule      = errors.New("SCHEDULER_HOURLY_SCHEDULE must be a valid cron expression")
	ErrInvalidDedupBackend  = errors.New("DEDUP_BACKEND must be one of redis, sqlite, memory")
	ErrSQLitePathMissing    = errors.New("DEDUP_SQLITE_PATH is required for the sqlite dedup backend")
	ErrInvalidPrimindTasks  = errors.New("PRIMIND_TASKS_URL must be an absolute http(s) URL")
	ErrCloudTasksIncomplete = errors.New("cloud tasks push gateway is not fully configured")
)
