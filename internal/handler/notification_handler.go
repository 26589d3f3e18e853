package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/notifier"
)

type ClickRouter interface {
	HandleClick(ctx context.Context, tag string) error
}

type NotificationHandler struct {
	router ClickRouter
}

func NewNotificationHandler(router ClickRouter) *NotificationHandler {
	return &NotificationHandler{
		router: router,
	}
}

// HandleClick receives the click callback the push gateway forwards when
// the user taps a notification.
func (h *NotificationHandler) HandleClick(c *gin.Context) {
	ctx := c.Request.Context()
	tag := c.Param("tag")

	slog.InfoContext(ctx, "handling notification click",
		slog.String("tag", tag),
	)

	if err := h.router.HandleClick(ctx, tag); err != nil {
		if errors.Is(err, notifier.ErrUnknownNotification) {
			respondError(c, http.StatusNotFound, "not_found", "no open notification with this tag")
			return
		}
		slog.ErrorContext(ctx, "notification click failed",
			slog.String("tag", tag),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to handle click")
		return
	}

	c.JSON(http.StatusOK, ClickResponse{Tag: tag, Status: "focused"})
}
