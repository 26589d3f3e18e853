//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/config"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/notifier"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/logging"
)

func initGateway(_ context.Context, cfg *config.Config) (notifier.Gateway, func() error, error) {
	if cfg.TaskQueue.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, push messages will only be logged")

		return notifier.NewLogGateway(), nil, nil
	}

	gateway := notifier.NewPrimindGateway(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.MaxRetries,
	)

	slog.Info("push gateway initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
	)

	return gateway, nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "hydration-scheduler"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: moduleName,
	})
}
