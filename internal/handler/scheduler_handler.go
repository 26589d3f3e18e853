package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/scheduler"
)

type SchedulerService interface {
	Evaluate(ctx context.Context, now time.Time) *scheduler.TickResult
	Preview(ctx context.Context, now time.Time) *scheduler.TickResult
	LastTick() *scheduler.TickResult
	NextHourly(now time.Time) (time.Time, error)
	TickInterval() time.Duration
}

// NotificationState exposes the permission and the notifications still on
// screen.
type NotificationState interface {
	Permission(ctx context.Context) domain.Permission
	Open() []string
}

type SchedulerHandler struct {
	scheduler     SchedulerService
	notifications NotificationState
	now           func() time.Time
}

func NewSchedulerHandler(schedulerService SchedulerService, notifications NotificationState) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler:     schedulerService,
		notifications: notifications,
		now:           time.Now,
	}
}

func (h *SchedulerHandler) HandleStatus(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	resp := StatusResponse{
		Permission:        h.notifications.Permission(ctx).String(),
		OpenNotifications: h.notifications.Open(),
		TickInterval:      h.scheduler.TickInterval().String(),
		LastTick:          toTickResponse(h.scheduler.LastTick()),
	}

	if next, err := h.scheduler.NextHourly(now); err == nil {
		resp.NextHourly = &next
	} else {
		slog.WarnContext(ctx, "failed to compute next hourly reminder",
			slog.String("error", err.Error()),
		)
	}

	c.JSON(http.StatusOK, resp)
}

// HandleEvaluate runs one evaluation immediately. With the optional "at"
// query parameter it previews a virtual time instead: decisions are
// reported but nothing is dispatched or recorded.
func (h *SchedulerHandler) HandleEvaluate(c *gin.Context) {
	ctx := c.Request.Context()

	atStr := c.Query("at")
	if atStr == "" {
		c.JSON(http.StatusOK, toTickResponse(h.scheduler.Evaluate(ctx, h.now())))
		return
	}

	at, err := time.Parse(time.RFC3339, atStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid at time format, expected RFC3339")
		return
	}
	slog.InfoContext(ctx, "previewing virtual time",
		slog.Time("virtual_now", at),
	)

	c.JSON(http.StatusOK, toTickResponse(h.scheduler.Preview(ctx, at)))
}
