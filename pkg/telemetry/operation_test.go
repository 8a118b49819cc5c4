package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTestTracer() (trace.Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return provider.Tracer("test"), recorder
}

func findSpanByName(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, span := range spans {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

func getAttr(attrs []attribute.KeyValue, key string) string {
	for _, attr := range attrs {
		if string(attr.Key) == key {
			return attr.Value.AsString()
		}
	}
	return ""
}

func TestBeginAndStepSuccess(t *testing.T) {
	t.Parallel()

	tracer, recorder := newTestTracer()
	op, err := Begin(context.Background(), tracer, "bootstrap.up", Plan{Steps: []PlannedStep{
		{ID: "deps", Title: "installing dependencies"},
		{ID: "model", Title: "downloading model"},
	}})
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	if err := op.Step(op.Context(), "deps", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	op.End(nil)

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended span count = %d, want 2", len(spans))
	}

	root := findSpanByName(spans, "bootstrap.up")
	if root == nil {
		t.Fatal("missing root span")
	}
	if len(root.Events()) == 0 {
		t.Fatal("expected root plan event")
	}
	event := root.Events()[0]
	if event.Name != PlanEventName {
		t.Fatalf("plan event name = %q, want %q", event.Name, PlanEventName)
	}
	if got := getAttr(event.Attributes, PlanVersionKey); got != PlanVersion {
		t.Fatalf("plan event version = %q, want %q", got, PlanVersion)
	}

	child := findSpanByName(spans, "deps")
	if child == nil {
		t.Fatal("missing step span")
	}
	if child.Parent().SpanID() != root.SpanContext().SpanID() {
		t.Fatalf("step parent span id = %s, want %s", child.Parent().SpanID(), root.SpanContext().SpanID())
	}
}

func TestStepFailureSetsErrorStatus(t *testing.T) {
	t.Parallel()

	tracer, recorder := newTestTracer()
	op, err := Begin(context.Background(), tracer, "bootstrap.up", Plan{Steps: []PlannedStep{{ID: "deps", Title: "installing dependencies"}}})
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	boom := errors.New("boom")
	err = op.Step(op.Context(), "deps", func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Step() error = %v, want boom", err)
	}
	op.End(err)

	child := findSpanByName(recorder.Ended(), "deps")
	if child == nil {
		t.Fatal("missing failed step span")
	}
	if child.Status().Code != codes.Error {
		t.Fatalf("step status code = %v, want %v", child.Status().Code, codes.Error)
	}
	if child.Status().Description != "boom" {
		t.Fatalf("step status description = %q, want boom", child.Status().Description)
	}
}

func TestBeginRejectsDuplicateStepIDs(t *testing.T) {
	t.Parallel()

	tracer, _ := newTestTracer()
	_, err := Begin(context.Background(), tracer, "bootstrap.up", Plan{Steps: []PlannedStep{
		{ID: "deps", Title: "installing dependencies"},
		{ID: "deps", Title: "duplicated"},
	}})
	if err == nil {
		t.Fatal("Begin() accepted a plan with duplicate step ids")
	}
}

func TestBeginRejectsNilTracer(t *testing.T) {
	t.Parallel()

	if _, err := Begin(context.Background(), nil, "bootstrap.up", Plan{}); err == nil {
		t.Fatal("Begin() accepted a nil tracer")
	}
}

func TestNilOperationIsInert(t *testing.T) {
	t.Parallel()

	var op *Operation
	if got := op.Context(); got == nil {
		t.Fatal("Context() on nil operation returned nil")
	}
	if err := op.Step(context.Background(), "deps", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Step() on nil operation error = %v", err)
	}
	op.End(nil)
}
