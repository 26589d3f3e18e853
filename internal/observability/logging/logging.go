package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module names the component a log line comes from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type HandlerConfig struct {
	ServiceInfo   ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
	Level         slog.Level
}

// contextHandler enriches every record with the request id, module and
// trace attributes found in the record's context.
type contextHandler struct {
	slog.Handler
	projectID     string
	defaultModule Module
}

func NewHandler(w io.Writer, cfg HandlerConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if cfg.GCPProjectID == "" {
				return a
			}
			// Cloud Logging reads "severity" and "message".
			switch a.Key {
			case slog.LevelKey:
				a.Key = "severity"
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	}

	base := slog.NewJSONHandler(w, opts).WithAttrs([]slog.Attr{
		slog.String("service", cfg.ServiceInfo.Name),
		slog.String("version", cfg.ServiceInfo.Version),
		slog.String("revision", cfg.ServiceInfo.Revision),
		slog.String("env", string(cfg.Environment)),
	})

	return &contextHandler{
		Handler:       base,
		projectID:     cfg.GCPProjectID,
		defaultModule: cfg.DefaultModule,
	}
}

func NewLogger(w io.Writer, cfg HandlerConfig) *slog.Logger {
	return slog.New(NewHandler(w, cfg))
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			r.AddAttrs(slog.String("request_id", requestID))
		}

		module := ModuleFromContext(ctx)
		if module == "" {
			module = h.defaultModule
		}
		if module != "" {
			r.AddAttrs(slog.String("module", string(module)))
		}

		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			r.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{
		Handler:       h.Handler.WithAttrs(attrs),
		projectID:     h.projectID,
		defaultModule: h.defaultModule,
	}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		Handler:       h.Handler.WithGroup(name),
		projectID:     h.projectID,
		defaultModule: h.defaultModule,
	}
}

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
