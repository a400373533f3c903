package transit

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "transit"

// startDispatchSpan creates the span covering a single dispatch.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startDispatchSpan(ctx context.Context, current *State, message *Message) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "transit.dispatch")

	currentName := ""
	if current != nil {
		currentName = current.Name()
	}

	span.SetAttributes(
		attribute.String("current_state", currentName),
		attribute.String("message", message.String()),
	)

	return ctx, span
}

// endDispatchSpan records the dispatch outcome on the span. Misses and
// aborts are expected outcomes, not span errors.
func endDispatchSpan(span trace.Span, result DispatchResult) {
	span.SetAttributes(attribute.String("outcome", result.Outcome.String()))

	if result.To != nil && result.Outcome == Dispatched {
		span.SetAttributes(attribute.String("next_state", result.To.Name()))
	}

	if result.Outcome == Aborted {
		span.SetAttributes(attribute.String("filter_status", result.FilterStatus.String()))
	}

	span.SetStatus(codes.Ok, result.Outcome.String())
}
