package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/logging"
)

func newRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(Gin(GinConfig{
		SkipPaths:  []string{"/health"},
		Module:     logging.Module("test"),
		TracerName: "test",
	}))
	r.Use(PanicRecoveryGin())
	r.GET("/ok", func(c *gin.Context) {
		seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	r.GET("/health", func(c *gin.Context) {
		seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r, &seen
}

func TestGin_PropagatesRequestID(t *testing.T) {
	r, seen := newRouter()
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if *seen != id {
		t.Errorf("request id in context = %q, want %q", *seen, id)
	}
	if got := w.Header().Get(RequestIDHeader); got != id {
		t.Errorf("response header = %q, want %q", got, id)
	}
}

func TestGin_GeneratesRequestID(t *testing.T) {
	r, seen := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if _, err := uuid.Parse(*seen); err != nil {
		t.Errorf("generated request id %q is not a uuid", *seen)
	}
}

func TestGin_SkipPaths(t *testing.T) {
	r, seen := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if *seen != "" {
		t.Errorf("skipped path got request id %q", *seen)
	}
	if w.Header().Get(RequestIDHeader) != "" {
		t.Error("skipped path should not set request id header")
	}
}

func TestPanicRecoveryGin(t *testing.T) {
	r, _ := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
