package telemetry

import (
	"context"
	"errors"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/shopdesk/backoffice"

// StartSpan starts an internal span on the global tracer provider
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records the outcome of err on span and ends it. Domain rule
// violations are tagged with their code but do not mark the span failed.
func EndSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) && de.Kind != shared.KindInternal {
		span.SetAttributes(
			attribute.String("shop.error.kind", string(de.Kind)),
			attribute.String("shop.error.code", de.Code),
		)
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
