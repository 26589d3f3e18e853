//go:build gcloud

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

// CloudTasksGateway enqueues push messages as HTTP tasks targeting the
// push sender service.
type CloudTasksGateway struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

func NewCloudTasksGateway(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksGateway, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksGateway{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (g *CloudTasksGateway) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", g.projectID, g.locationID, g.queueID)
}

func (g *CloudTasksGateway) Deliver(ctx context.Context, msg *PushMessage) (*DeliveryReceipt, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push message: %w", err)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: g.queuePath(),
		Task: &taskspb.Task{
			Name: g.queuePath() + "/tasks/" + msg.ID,
			MessageType: &taskspb.Task_HttpRequest{
				HttpRequest: &taskspb.HttpRequest{
					HttpMethod: taskspb.HttpMethod_POST,
					Url:        g.targetURL,
					Headers: map[string]string{
						"Content-Type": "application/json",
					},
					Body: payload,
				},
			},
		},
	}

	if !msg.SentAt.IsZero() {
		req.Task.ScheduleTime = timestamppb.New(msg.SentAt)
	}

	var receipt *DeliveryReceipt
	err = withRetry(ctx, g.maxRetries, "deliver", msg.ID, func(ctx context.Context) error {
		created, err := g.client.CreateTask(ctx, req)
		if err != nil {
			// A retried create that already landed is not a failure.
			if status.Code(err) == codes.AlreadyExists {
				receipt = &DeliveryReceipt{Name: req.Task.Name}
				return nil
			}
			slog.WarnContext(ctx, "failed to create cloud task",
				slog.String("message_id", msg.ID),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("failed to create cloud task: %w", err)
		}

		receipt = &DeliveryReceipt{Name: created.Name}
		if created.CreateTime != nil {
			receipt.CreateTime = created.CreateTime.AsTime()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "push message queued on Cloud Tasks",
		slog.String("task_name", receipt.Name),
		slog.String("message_id", msg.ID),
		slog.String("kind", string(msg.Kind)),
	)
	return receipt, nil
}

func (g *CloudTasksGateway) Retract(ctx context.Context, messageID string) error {
	taskPath := g.queuePath() + "/tasks/" + messageID

	return withRetry(ctx, g.maxRetries, "retract", messageID, func(ctx context.Context) error {
		err := g.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{Name: taskPath})
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return fmt.Errorf("failed to delete cloud task: %w", err)
		}
		return nil
	})
}

func (g *CloudTasksGateway) Close() error {
	return g.client.Close()
}
