//go:build !gcloud

package config

import (
	"net/url"
)

// Validate accepts an empty PRIMIND_TASKS_URL; push messages are then only
// logged.
func (c *TaskQueueConfig) Validate() error {
	if c.PrimindTasksURL == "" {
		return nil
	}

	u, err := url.Parse(c.PrimindTasksURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidPrimindTasks
	}
	return nil
}
