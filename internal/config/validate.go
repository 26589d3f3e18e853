package config

import (
	"errors"

	"github.com/adhocore/gronx"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.BackendURL == "" {
		errs = append(errs, ErrBackendURLMissing)
	}
	if !gronx.IsValid(cfg.Scheduler.HourlySchedule) {
		errs = append(errs, ErrInvalidSchedule)
	}
	if err := cfg.Dedup.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.UsesRedis() {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
