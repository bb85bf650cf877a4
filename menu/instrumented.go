package menu

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedExpander wraps an Expander with tracing and metrics.
type InstrumentedExpander struct {
	*Expander
	tracer trace.Tracer

	runs     metric.Int64Counter
	failures metric.Int64Counter
	cycles   metric.Int64Counter
	items    metric.Int64Gauge
	duration metric.Float64Histogram
}

// NewInstrumentedExpander initializes the instruments on meter.
func NewInstrumentedExpander(e *Expander, tracer trace.Tracer, meter metric.Meter) *InstrumentedExpander {
	runs, _ := meter.Int64Counter("menu_runs_total",
		metric.WithDescription("Total number of menu reports started"))
	failures, _ := meter.Int64Counter("menu_runs_failed_total",
		metric.WithDescription("Total number of menu reports that failed"))
	cycles, _ := meter.Int64Counter("menu_cycles_detected_total",
		metric.WithDescription("Total number of recipe cycles detected in extras"))
	items, _ := meter.Int64Gauge("shopping_items_count",
		metric.WithDescription("Number of distinct items on the latest shopping list"))
	duration, _ := meter.Float64Histogram("menu_render_duration_seconds",
		metric.WithDescription("Duration of a full menu report in seconds"))

	return &InstrumentedExpander{
		Expander: e,
		tracer:   tracer,
		runs:     runs,
		failures: failures,
		cycles:   cycles,
		items:    items,
		duration: duration,
	}
}

// Report runs Expander.Report inside a span and records run metrics.
func (ie *InstrumentedExpander) Report(ctx context.Context, m Menu, p Printer) (*Ledger, error) {
	ctx, span := ie.tracer.Start(ctx, "InstrumentedExpander.Report", trace.WithAttributes(
		attribute.Int("menu.sections", len(m.Sections)),
	))
	defer span.End()

	ie.runs.Add(ctx, 1)
	start := time.Now()

	ledger, err := ie.Expander.Report(ctx, m, p)
	ie.duration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		ie.failures.Add(ctx, 1)
		var cycle *CycleError
		if errors.As(err, &cycle) {
			ie.cycles.Add(ctx, 1)
			span.SetAttributes(attribute.StringSlice("menu.cycle", cycle.Path))
		}
		span.SetStatus(codes.Error, "menu report failed")
		span.RecordError(err)
		slog.Error("EXPANDER: Menu report failed", "error", err)
		return nil, err
	}

	ie.items.Record(ctx, int64(ledger.Len()))
	span.AddEvent("Shopping list rendered", trace.WithAttributes(
		attribute.Int("shopping.items", ledger.Len()),
	))
	return ledger, nil
}
