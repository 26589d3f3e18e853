package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// staleTicks is how many tick intervals may pass without an evaluation
// before the scheduler counts as stalled.
const staleTicks = 3

type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TickReporter exposes when the scheduler last completed an evaluation.
type TickReporter interface {
	LastTickAt() time.Time
	TickInterval() time.Duration
}

type Checker struct {
	redisClient *redis.Client
	store       Pinger
	ticks       TickReporter
	version     string
	startedAt   time.Time
	now         func() time.Time
}

// NewChecker creates a health checker. redisClient, store and ticks may be
// nil when the dependency is not in use.
func NewChecker(redisClient *redis.Client, store Pinger, ticks TickReporter, version string) *Checker {
	return &Checker{
		redisClient: redisClient,
		store:       store,
		ticks:       ticks,
		version:     version,
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redisClient != nil {
		c.probe(status, "redis", func() error {
			return c.redisClient.Ping(checkCtx).Err()
		})
	}

	if c.store != nil {
		c.probe(status, "dedup_store", func() error {
			return c.store.Ping(checkCtx)
		})
	}

	if c.ticks != nil {
		status.Checks["scheduler"] = c.checkTicks()
		if status.Checks["scheduler"].Status != StatusHealthy {
			status.Status = StatusUnhealthy
		}
	}

	return status
}

func (c *Checker) probe(status *HealthStatus, name string, ping func() error) {
	start := time.Now()
	if err := ping(); err != nil {
		status.Status = StatusUnhealthy
		status.Checks[name] = CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
		return
	}
	status.Checks[name] = CheckResult{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (c *Checker) checkTicks() CheckResult {
	limit := staleTicks * c.ticks.TickInterval()
	now := c.now()

	last := c.ticks.LastTickAt()
	if last.IsZero() {
		// Give the first evaluation time to complete after startup.
		if now.Sub(c.startedAt) <= limit {
			return CheckResult{Status: StatusHealthy}
		}
		return CheckResult{Status: StatusUnhealthy, Error: "no evaluation completed yet"}
	}

	age := now.Sub(last)
	if age > limit {
		return CheckResult{
			Status:    StatusUnhealthy,
			LatencyMs: age.Milliseconds(),
			Error:     "last evaluation is older than " + limit.String(),
		}
	}
	return CheckResult{Status: StatusHealthy, LatencyMs: age.Milliseconds()}
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
