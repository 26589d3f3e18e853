package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/tracing"
)

var errNotFound = errors.New("resource not found")

// Client reads one user's hydration state from the backend and writes the
// adaptive daily goal back.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

func NewClient(baseURL, userID string) *Client {
	return &Client{
		baseURL:    baseURL,
		userID:     userID,
		httpClient: newHTTPClient(baseURL),
	}
}

func (c *Client) GetReminders(ctx context.Context) ([]domain.Reminder, error) {
	var resp RemindersResponse
	if err := c.do(ctx, "get_reminders", http.MethodGet, "reminders", nil, &resp); err != nil {
		return nil, err
	}

	reminders := make([]domain.Reminder, 0, len(resp.Reminders))
	for _, r := range resp.Reminders {
		reminders = append(reminders, domain.Reminder{
			ID:         r.ID,
			Time:       r.Time,
			DaysOfWeek: domain.DaysOfWeek(r.DaysOfWeek),
			Sound:      r.Sound,
			Vibration:  r.Vibration,
			AlertType:  domain.ParseAlertType(r.AlertType),
			Enabled:    r.Enabled,
		})
	}

	slog.DebugContext(ctx, "fetched reminders",
		slog.Int("count", len(reminders)),
	)

	return reminders, nil
}

// GetNightMode returns a disabled configuration when the user never set one.
func (c *Client) GetNightMode(ctx context.Context) (*domain.NightMode, error) {
	var resp NightModeResponse
	err := c.do(ctx, "get_night_mode", http.MethodGet, "night-mode", nil, &resp)
	if errors.Is(err, errNotFound) {
		return &domain.NightMode{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.NightMode{
		Enabled:       resp.Enabled,
		Start:         resp.StartTime,
		End:           resp.EndTime,
		MuteReminders: resp.MuteReminders,
	}, nil
}

func (c *Client) GetWaterSnapshot(ctx context.Context) (*domain.WaterSnapshot, error) {
	var resp ProgressResponse
	if err := c.do(ctx, "get_progress", http.MethodGet, "progress", nil, &resp); err != nil {
		return nil, err
	}

	if resp.WakeUpTime == nil || resp.SleepTime == nil {
		return nil, fmt.Errorf("%w: wake-up or sleep time not set", domain.ErrSnapshotIncomplete)
	}

	ws := &domain.WaterSnapshot{
		WakeUpTime: *resp.WakeUpTime,
		SleepTime:  *resp.SleepTime,
		DailyGoal:  resp.DailyGoal,
	}
	if resp.CurrentCount != nil {
		ws.CurrentCount = *resp.CurrentCount
	}
	return ws, nil
}

func (c *Client) SetDailyGoal(ctx context.Context, goal int64) error {
	if goal <= 0 {
		return domain.ErrInvalidDailyGoal
	}

	body, err := json.Marshal(SetGoalRequest{Goal: goal})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	if err := c.do(ctx, "set_goal", http.MethodPost, "goal", body, nil); err != nil {
		return err
	}

	slog.DebugContext(ctx, "daily goal sent",
		slog.Int64("goal", goal),
	)

	return nil
}

func (c *Client) do(ctx context.Context, operation, method, resource string, body []byte, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("api", "v1", "users", c.userID, resource)

	ctx, span := tracing.StartExternalAPISpan(ctx, operation, u.String())
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to hydration backend",
			slog.String("operation", operation),
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", errNotFound, u.Path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		slog.ErrorContext(ctx, "unexpected status code from hydration backend",
			slog.String("operation", operation),
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		tracing.RecordError(span, err)
		return err
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		slog.ErrorContext(ctx, "failed to decode response from hydration backend",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
