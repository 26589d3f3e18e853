package hostwindow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

const FocusChannel = "hydration:focus"

type FocusEvent struct {
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// RedisFocuser asks the user's open client to bring itself to the front by
// publishing on FocusChannel.
type RedisFocuser struct {
	client *redis.Client
	userID string
	now    func() time.Time
}

var _ domain.HostWindow = (*RedisFocuser)(nil)

func NewRedisFocuser(client *redis.Client, userID string) *RedisFocuser {
	return &RedisFocuser{
		client: client,
		userID: userID,
		now:    time.Now,
	}
}

func (f *RedisFocuser) Focus(ctx context.Context) error {
	payload, err := json.Marshal(FocusEvent{UserID: f.userID, At: f.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal focus event: %w", err)
	}

	receivers, err := f.client.Publish(ctx, FocusChannel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish focus event: %w", err)
	}

	slog.DebugContext(ctx, "focus event published",
		slog.String("user_id", f.userID),
		slog.Int64("receivers", receivers),
	)
	return nil
}

// LogFocuser is used when no Redis is configured; it only records the
// request.
type LogFocuser struct {
	userID string
}

var _ domain.HostWindow = (*LogFocuser)(nil)

func NewLogFocuser(userID string) *LogFocuser {
	return &LogFocuser{userID: userID}
}

func (f *LogFocuser) Focus(ctx context.Context) error {
	slog.InfoContext(ctx, "focus requested without a host channel",
		slog.String("user_id", f.userID),
	)
	return nil
}
