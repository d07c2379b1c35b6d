package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/ghuser/itemvalidation"

// Form submission outcomes.
const (
	OutcomeSaved    = "saved"
	OutcomeUpdated  = "updated"
	OutcomeRejected = "rejected"
)

// FormMetrics counts item form submissions by controller version, validation
// variant and outcome.
type FormMetrics struct {
	submissions metric.Int64Counter
	errors      metric.Int64Histogram
}

// NewFormMetrics registers the form instruments on mp.
func NewFormMetrics(mp metric.MeterProvider) (*FormMetrics, error) {
	meter := mp.Meter(instrumentationName)
	submissions, err := meter.Int64Counter(
		"item_form_submissions_total",
		metric.WithDescription("Item form submissions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("submissions counter: %w", err)
	}
	errs, err := meter.Int64Histogram(
		"item_form_errors",
		metric.WithDescription("Validation errors per rejected item form"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 6, 8),
	)
	if err != nil {
		return nil, fmt.Errorf("errors histogram: %w", err)
	}
	return &FormMetrics{submissions: submissions, errors: errs}, nil
}

// Record counts one submission. errorCount is only recorded for rejections.
// A nil receiver records nothing.
func (m *FormMetrics) Record(ctx context.Context, version, variant, outcome string, errorCount int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("version", version),
		attribute.String("variant", variant),
		attribute.String("outcome", outcome),
	)
	m.submissions.Add(ctx, 1, attrs)
	if outcome == OutcomeRejected {
		m.errors.Record(ctx, int64(errorCount), metric.WithAttributes(
			attribute.String("version", version),
			attribute.String("variant", variant),
		))
	}
}
