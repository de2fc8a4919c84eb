// Package tracer provides the tracing abstraction used around statement dispatch.
// It supports OpenTelemetry and allows custom tracer implementations.
package tracer

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer starts the spans the builder opens around sink dispatch.
// Implementations can adapt OpenTelemetry or any custom backend.
type Tracer interface {
	// StartSpan starts a span named name and returns the derived context
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span represents the dispatch of one compiled statement.
type Span interface {
	// SetAttributes sets key-value attributes on the span
	SetAttributes(attrs ...attribute.KeyValue)
	// RecordError records a sink error on the span
	RecordError(err error)
	// SetStatus sets the status code and description of the span
	SetStatus(code codes.Code, description string)
	// End marks the span as complete
	End()
}

// NoopTracer is a tracer that does nothing.
// This is the default tracer when no tracer option is given.
type NoopTracer struct{}

// StartSpan returns the context unchanged with a no-op span.
func (n *NoopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, &NoopSpan{}
}

// NoopSpan is a span that does nothing.
type NoopSpan struct{}

// SetAttributes does nothing.
func (n *NoopSpan) SetAttributes(_ ...attribute.KeyValue) {}

// RecordError does nothing.
func (n *NoopSpan) RecordError(_ error) {}

// SetStatus does nothing.
func (n *NoopSpan) SetStatus(_ codes.Code, _ string) {}

// End does nothing.
func (n *NoopSpan) End() {}

// OtelTracer wraps an OpenTelemetry tracer to implement the Tracer interface.
type OtelTracer struct {
	tracer trace.Tracer
}

// NewOtelTracer creates a new OpenTelemetry tracer adapter.
// The provided tracer must not be nil.
func NewOtelTracer(tracer trace.Tracer) *OtelTracer {
	return &OtelTracer{tracer: tracer}
}

// StartSpan starts a new OpenTelemetry span.
func (t *OtelTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OtelSpan{span: span}
}

// OtelSpan wraps an OpenTelemetry span.
type OtelSpan struct {
	span trace.Span
}

// SetAttributes sets OpenTelemetry attributes on the span.
func (s *OtelSpan) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// RecordError records err on the OpenTelemetry span.
func (s *OtelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

// SetStatus sets the status of the OpenTelemetry span.
func (s *OtelSpan) SetStatus(code codes.Code, description string) {
	s.span.SetStatus(code, description)
}

// End completes the OpenTelemetry span.
func (s *OtelSpan) End() {
	s.span.End()
}

// StatementMetadata describes one compiled statement handed to a sink.
// Attribute names follow the OpenTelemetry database semantic conventions.
type StatementMetadata struct {
	// SQL is the compiled statement text.
	SQL string
	// ValueCount is the number of bound values.
	ValueCount int
	// Duration covers sink dispatch, zero for pure collection.
	Duration time.Duration
	// Error is the sink error, if any.
	Error error
	// System is the dialect name (mysql, sqlite, rqlite).
	System string
	// Operation is the SQL verb, see DetectOperation.
	Operation string
	// Table is the target table or database name, optional.
	Table string
}

// AddStatementAttributes records meta on span and sets the span status.
// See: https://opentelemetry.io/docs/specs/semconv/database/
func AddStatementAttributes(span Span, meta *StatementMetadata) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", meta.System),
		attribute.String("db.statement", meta.SQL),
		attribute.String("db.operation", meta.Operation),
		attribute.Int("db.statement.values", meta.ValueCount),
	}

	// Pure collection has no measured duration
	if meta.Duration > 0 {
		attrs = append(attrs, attribute.Float64("db.duration_ms", float64(meta.Duration.Microseconds())/1000.0))
	}

	if meta.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", meta.Table))
	}

	span.SetAttributes(attrs...)

	// Record the sink outcome
	if meta.Error != nil {
		span.RecordError(meta.Error)
		span.SetStatus(codes.Error, meta.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// operationPrefixes maps leading keywords to operation names, longest first.
var operationPrefixes = []struct {
	prefix    string
	operation string
}{
	{"CREATE DATABASE", "CREATE DATABASE"},
	{"CREATE TABLE", "CREATE TABLE"},
	{"DROP DATABASE", "DROP DATABASE"},
	{"DROP TABLE", "DROP TABLE"},
	{"SELECT", "SELECT"},
	{"WITH", "SELECT"},
	{"INSERT", "INSERT"},
	{"UPDATE", "UPDATE"},
	{"DELETE", "DELETE"},
}

// DetectOperation detects the SQL operation from the statement text.
// Returns one of the operationPrefixes operations, or UNKNOWN.
func DetectOperation(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, p := range operationPrefixes {
		if strings.HasPrefix(sql, p.prefix) {
			return p.operation
		}
	}
	return "UNKNOWN"
}
