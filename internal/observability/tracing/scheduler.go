package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const schedulerTracerName = "github.com/KasumiMercury/primind-hydration-scheduler/internal/service/scheduler"

func SchedulerTracer() trace.Tracer {
	return otel.Tracer(schedulerTracerName)
}

func StartTickSpan(ctx context.Context, runID string, evaluatedAt time.Time) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "scheduler.tick",
		trace.WithAttributes(
			attribute.String("tick.run_id", runID),
			attribute.String("tick.evaluated_at", evaluatedAt.Format(time.RFC3339)),
		),
	)
}

func StartPolicySpan(ctx context.Context, policy string) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "scheduler.policy."+policy)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "scheduler.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPolicyResult(span trace.Span, fired, suppressed, skipped, failed int) {
	span.SetAttributes(
		attribute.Int("policy.fired_count", fired),
		attribute.Int("policy.suppressed_count", suppressed),
		attribute.Int("policy.skipped_count", skipped),
		attribute.Int("policy.failed_count", failed),
	)
	if failed > 0 {
		span.SetStatus(codes.Error, "one or more evaluations failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
