package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/metrics"
)

// PanicRecoveryGin turns handler panics into a 500 response.
func PanicRecoveryGin(httpMetrics ...*metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			ctx := c.Request.Context()
			span := trace.SpanFromContext(ctx)
			span.SetStatus(codes.Error, fmt.Sprint(rec))

			slog.ErrorContext(ctx, "panic recovered",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("path", c.Request.URL.Path),
				slog.String("stack", string(debug.Stack())),
			)

			for _, m := range httpMetrics {
				if m != nil {
					m.RecordPanic(ctx, c.FullPath())
				}
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
		}()

		c.Next()
	}
}
