//go:build !gcloud

package config

import (
	"errors"
	"testing"
)

func TestTaskQueueConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "unset", url: ""},
		{name: "http", url: "http://primind-tasks:8080"},
		{name: "no scheme", url: "primind-tasks:8080", wantErr: true},
		{name: "ftp", url: "ftp://primind-tasks", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &TaskQueueConfig{PrimindTasksURL: tt.url}
			err := cfg.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPrimindTasks) {
				t.Errorf("Validate() error = %v, want ErrInvalidPrimindTasks", err)
			}
		})
	}
}
