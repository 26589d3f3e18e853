package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const defaultMaxRetries = 3

// withRetry runs op up to maxRetries times with exponential backoff
// starting at 100ms.
func withRetry(ctx context.Context, maxRetries int, opName, messageID string, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying push gateway call",
				slog.String("operation", opName),
				slog.String("message_id", messageID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for push gateway call",
		slog.String("operation", opName),
		slog.String("message_id", messageID),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("%s failed after %d retries: %w", opName, maxRetries, lastErr)
}
