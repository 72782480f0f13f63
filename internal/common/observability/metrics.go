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

// Observability holds the OpenTelemetry instruments of the sink. The zero
// value is usable and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	docCounter    otelmetric.Int64Counter
	docDuration   otelmetric.Float64Histogram
	docSize       otelmetric.Int64Histogram
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

	docCounter, _ := meter.Int64Counter(
		"registration.documents.received",
		otelmetric.WithDescription("Number of registration documents received"),
	)

	docDuration, _ := meter.Float64Histogram(
		"registration.documents.duration",
		otelmetric.WithDescription("Time spent handling a registration document"),
		otelmetric.WithUnit("ms"),
	)

	docSize, _ := meter.Int64Histogram(
		"registration.documents.size",
		otelmetric.WithDescription("Size of received registration documents"),
		otelmetric.WithUnit("By"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		docCounter:    docCounter,
		docDuration:   docDuration,
		docSize:       docSize,
	}
}

func (o *Observability) RecordDocumentReceived(ctx context.Context, status string, sizeBytes int) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("status", status))
	if o.docCounter != nil {
		o.docCounter.Add(ctx, 1, attrs)
	}
	if o.docSize != nil {
		o.docSize.Record(ctx, int64(sizeBytes), attrs)
	}
}

func (o *Observability) RecordDocumentDuration(ctx context.Context, duration time.Duration, status string) {
	if o == nil || o.docDuration == nil {
		return
	}
	o.docDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
