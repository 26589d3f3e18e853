//go:build !gcloud

package notifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// PrimindGateway enqueues push messages on a Primind Tasks queue.
type PrimindGateway struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewPrimindGateway(baseURL, queueName string, maxRetries int) *PrimindGateway {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &PrimindGateway{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (g *PrimindGateway) tasksURL() string {
	if g.queueName != "" && g.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", g.baseURL, url.PathEscape(g.queueName))
	}
	return fmt.Sprintf("%s/tasks", g.baseURL)
}

func (g *PrimindGateway) Deliver(ctx context.Context, msg *PushMessage) (*DeliveryReceipt, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push message: %w", err)
	}

	reqBody, err := json.Marshal(PrimindTaskRequest{
		Task: PrimindTask{
			Name: msg.ID,
			HTTPRequest: PrimindHTTPRequest{
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primind request: %w", err)
	}

	var receipt *DeliveryReceipt
	err = withRetry(ctx, g.maxRetries, "deliver", msg.ID, func(ctx context.Context) error {
		r, err := g.doDeliver(ctx, reqBody, msg)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (g *PrimindGateway) doDeliver(ctx context.Context, reqBody []byte, msg *PushMessage) (*DeliveryReceipt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tasksURL(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send push message to Primind Tasks",
			slog.String("message_id", msg.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.WarnContext(ctx, "unexpected status code from Primind Tasks",
			slog.String("message_id", msg.ID),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var primindResp PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	createTime, _ := time.Parse(time.RFC3339, primindResp.CreateTime)

	slog.DebugContext(ctx, "push message queued on Primind Tasks",
		slog.String("task_name", primindResp.Name),
		slog.String("message_id", msg.ID),
		slog.String("kind", string(msg.Kind)),
	)

	return &DeliveryReceipt{
		Name:       primindResp.Name,
		CreateTime: createTime,
	}, nil
}

// Retract removes a queued message. Messages already delivered are gone
// from the queue, so a 404 counts as success.
func (g *PrimindGateway) Retract(ctx context.Context, messageID string) error {
	target := g.tasksURL() + "/" + url.PathEscape(messageID)

	return withRetry(ctx, g.maxRetries, "retract", messageID, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := g.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
			return nil
		default:
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
	})
}
