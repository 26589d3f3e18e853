package stubbackend

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/backend"
)

type Handler struct {
	storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

// Register mounts the backend API under /api/v1/users/:id.
func (h *Handler) Register(r gin.IRouter) {
	users := r.Group("/api/v1/users/:id")
	users.Use(h.injectFailures)
	users.GET("/reminders", h.HandleGetReminders)
	users.GET("/night-mode", h.HandleGetNightMode)
	users.GET("/progress", h.HandleGetProgress)
	users.POST("/goal", h.HandleSetGoal)
}

func (h *Handler) injectFailures(c *gin.Context) {
	resource := strings.TrimPrefix(c.Request.URL.Path, "/api/v1/users/"+c.Param("id")+"/")
	if status := h.storage.failure(resource); status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
		return
	}
	c.Next()
}

// GET /api/v1/users/:id/reminders
func (h *Handler) HandleGetReminders(c *gin.Context) {
	reminders := h.storage.Reminders(c.Param("id"))
	c.JSON(http.StatusOK, backend.RemindersResponse{Reminders: reminders})
}

// GET /api/v1/users/:id/night-mode
func (h *Handler) HandleGetNightMode(c *gin.Context) {
	nm, ok := h.storage.NightMode(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "night mode not configured"})
		return
	}
	c.JSON(http.StatusOK, nm)
}

// GET /api/v1/users/:id/progress
func (h *Handler) HandleGetProgress(c *gin.Context) {
	p, ok := h.storage.Progress(c.Param("id"))
	if !ok {
		c.JSON(http.StatusOK, backend.ProgressResponse{})
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/v1/users/:id/goal
func (h *Handler) HandleSetGoal(c *gin.Context) {
	var req backend.SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Goal <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal must be positive"})
		return
	}

	h.storage.SetGoal(c.Param("id"), req.Goal)

	slog.Debug("goal updated",
		slog.String("user_id", c.Param("id")),
		slog.Int64("goal", req.Goal),
	)

	c.Status(http.StatusNoContent)
}

// NewServer starts a stub backend for the duration of the test.
func NewServer(t *testing.T) (*httptest.Server, *Storage) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	storage := NewStorage()
	router := gin.New()
	NewHandler(storage).Register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, storage
}
