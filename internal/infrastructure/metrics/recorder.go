package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bibbank/calculator"

// Recorder implements port.DecisionRecorder with OpenTelemetry instruments.
type Recorder struct {
	offers          metric.Int64Counter
	offersDuration  metric.Float64Histogram
	credits         metric.Int64Counter
	creditsDuration metric.Float64Histogram
}

// NewRecorder creates the calculator instruments on the given provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(meterName)

	offers, err := meter.Int64Counter("calculator_offer_requests_total",
		metric.WithDescription("Pre-scoring offer requests by outcome."))
	if err != nil {
		return nil, fmt.Errorf("create offers counter: %w", err)
	}
	offersDuration, err := meter.Float64Histogram("calculator_offer_duration_seconds",
		metric.WithDescription("Time to produce pre-scoring offers."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create offers histogram: %w", err)
	}
	credits, err := meter.Int64Counter("calculator_credit_decisions_total",
		metric.WithDescription("Scoring decisions by outcome and refusal code."))
	if err != nil {
		return nil, fmt.Errorf("create credits counter: %w", err)
	}
	creditsDuration, err := meter.Float64Histogram("calculator_credit_duration_seconds",
		metric.WithDescription("Time to score and price a credit."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create credits histogram: %w", err)
	}

	return &Recorder{
		offers:          offers,
		offersDuration:  offersDuration,
		credits:         credits,
		creditsDuration: creditsDuration,
	}, nil
}

func (r *Recorder) RecordOffers(ctx context.Context, outcome string, cached bool, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("cached", cached),
	)
	r.offers.Add(ctx, 1, attrs)
	r.offersDuration.Record(ctx, elapsed.Seconds(), attrs)
}

func (r *Recorder) RecordCredit(ctx context.Context, outcome, refusalCode string, elapsed time.Duration) {
	r.credits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("refusal_code", refusalCode),
	))
	r.creditsDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
