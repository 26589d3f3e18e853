//go:build gcloud

package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the Cloud Tasks target that push messages are enqueued to.
func (c *TaskQueueConfig) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{env: "GCLOUD_PROJECT_ID", value: c.GCloudProjectID},
		{env: "GCLOUD_LOCATION_ID", value: c.GCloudLocationID},
		{env: "GCLOUD_QUEUE_ID", value: c.GCloudQueueID},
		{env: "GCLOUD_TARGET_URL", value: c.GCloudTargetURL},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrCloudTasksIncomplete, r.env))
		}
	}

	if c.GCloudTargetURL != "" {
		u, err := url.Parse(c.GCloudTargetURL)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: GCLOUD_TARGET_URL must be an absolute https URL", ErrCloudTasksIncomplete))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("push gateway configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
