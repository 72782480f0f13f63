package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"business-registration/internal/common/errors"
	httpclient "business-registration/internal/common/http"
	"business-registration/internal/common/logger"
	"business-registration/internal/common/metrics"
	"business-registration/internal/common/validation"
	"business-registration/internal/models"
)

// Coordinator sends validated documents to the registration sink. It keeps
// no per-document state and never retries.
type Coordinator struct {
	config *Config
	logger logger.Logger
	client *httpclient.Client
	schema *validation.JSONSchema
	tracer trace.Tracer
}

func NewCoordinator(deps ServiceDependencies, cfg *Config) (*Coordinator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission config: %w", err)
	}

	schema, err := validation.CompileSchema(payloadSchema)
	if err != nil {
		return nil, err
	}

	client := deps.Client
	if client == nil {
		client = httpclient.NewClient(cfg.Timeout)
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	tp := deps.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Coordinator{
		config: cfg,
		logger: log.Named("submission"),
		client: client,
		schema: schema,
		tracer: tp.Tracer("business-registration/submission"),
	}, nil
}

// Submit serializes doc, posts it and maps the outcome. Every failure is a
// *errors.StandardError whose Message is safe to show the user.
func (c *Coordinator) Submit(ctx context.Context, doc models.Document) (*Ack, error) {
	ctx, span := c.tracer.Start(ctx, "submission.submit", trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("sink.endpoint", c.config.Endpoint),
		attribute.Int("document.services", len(doc.Services)),
	))
	defer span.End()

	start := time.Now()
	metrics.SubmissionsInFlight.Inc()
	defer metrics.SubmissionsInFlight.Dec()

	ack, outcome, err := c.submit(ctx, doc)

	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	metrics.SubmissionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("submission.outcome", outcome))

	if err != nil {
		stdErr := errors.AsStandardError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, stdErr.Message)
		c.logger.Warn("Submission failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"message":   stdErr.Message,
			"details":   stdErr.Details,
			"outcome":   outcome,
		})
		return nil, stdErr
	}

	ack.Duration = time.Since(start)
	span.SetAttributes(attribute.Int("http.status_code", ack.StatusCode))
	c.logger.Info("Submission accepted", map[string]interface{}{
		"statusCode":   ack.StatusCode,
		"businessName": doc.BusinessName,
		"services":     len(doc.Services),
		"durationMs":   ack.Duration.Milliseconds(),
	})
	return ack, nil
}

func (c *Coordinator) submit(ctx context.Context, doc models.Document) (*Ack, string, error) {
	payload, err := BuildPayload(doc)
	if err != nil {
		return nil, metrics.OutcomeInternal, errors.NewSerializationFailedError(err)
	}

	result, err := c.schema.Validate(payload)
	if err != nil {
		return nil, metrics.OutcomeInternal, errors.NewSerializationFailedError(err)
	}
	if !result.Valid {
		return nil, metrics.OutcomeInternal, errors.NewSerializationFailedError(
			fmt.Errorf("payload does not match schema: %s", strings.Join(result.GetErrorMessages(), "; ")),
		)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, metrics.OutcomeInternal, errors.NewSerializationFailedError(err)
	}

	c.logger.Debug("Posting registration document", map[string]interface{}{
		"endpoint": c.config.Endpoint,
		"bytes":    len(body),
	})

	resp, err := c.client.PostJSON(ctx, c.config.Endpoint, body)
	if err != nil {
		return nil, metrics.OutcomeUnreachable, errors.NewSinkUnreachableError(c.config.Endpoint, err)
	}

	if !resp.IsSuccess() {
		var sinkErr models.SinkError
		// A body that is not JSON falls back to the generic message.
		_ = json.Unmarshal(resp.Body, &sinkErr)
		return nil, metrics.OutcomeRejected, errors.NewSubmissionFailedError(resp.StatusCode, sinkErr.Error)
	}

	return &Ack{
		Success:    true,
		StatusCode: resp.StatusCode,
		ReceivedAt: time.Now().UTC(),
	}, metrics.OutcomeAccepted, nil
}
