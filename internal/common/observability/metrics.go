package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability carries the business-level instruments. Job throughput and
// latency live in the prometheus counters under internal/common/metrics;
// this layer tracks what the pipeline actually produced.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	leadsScored   otelmetric.Int64Counter
	emailsDrafted otelmetric.Int64Counter
	emailsSent    otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	leadsScored, _ := meter.Int64Counter(
		"leads.scored",
		otelmetric.WithDescription("Number of leads scored"),
	)

	emailsDrafted, _ := meter.Int64Counter(
		"emails.drafted",
		otelmetric.WithDescription("Number of outreach emails drafted"),
	)

	emailsSent, _ := meter.Int64Counter(
		"emails.sent",
		otelmetric.WithDescription("Number of emails handed to the mail provider"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		leadsScored:   leadsScored,
		emailsDrafted: emailsDrafted,
		emailsSent:    emailsSent,
	}
}

func (o *Observability) RecordLeadScored(ctx context.Context, qualityLabel string) {
	if o.leadsScored != nil {
		o.leadsScored.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("quality", qualityLabel),
		))
	}
}

func (o *Observability) RecordEmailDrafted(ctx context.Context, kind string) {
	if o.emailsDrafted != nil {
		o.emailsDrafted.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("kind", kind),
		))
	}
}

func (o *Observability) RecordEmailSent(ctx context.Context, provider string) {
	if o.emailsSent != nil {
		o.emailsSent.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("provider", provider),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
