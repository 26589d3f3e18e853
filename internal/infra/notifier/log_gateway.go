package notifier

import (
	"context"
	"log/slog"
	"time"
)

// LogGateway writes push messages to the log instead of a queue. It is
// used when no delivery queue is configured.
type LogGateway struct{}

func NewLogGateway() *LogGateway {
	return &LogGateway{}
}

func (g *LogGateway) Deliver(ctx context.Context, msg *PushMessage) (*DeliveryReceipt, error) {
	slog.InfoContext(ctx, "push message",
		slog.String("message_id", msg.ID),
		slog.String("kind", string(msg.Kind)),
		slog.String("tag", msg.Tag),
		slog.String("title", msg.Title),
		slog.String("body", msg.Body),
		slog.Bool("silent", msg.Silent),
		slog.String("sound", msg.Sound),
	)
	return &DeliveryReceipt{Name: msg.ID, CreateTime: time.Now()}, nil
}

func (g *LogGateway) Retract(ctx context.Context, messageID string) error {
	slog.DebugContext(ctx, "push message retracted",
		slog.String("message_id", messageID),
	)
	return nil
}
