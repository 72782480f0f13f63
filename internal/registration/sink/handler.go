package sink

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"business-registration/internal/common/errors"
	"business-registration/internal/common/logger"
	"business-registration/internal/common/metrics"
	"business-registration/internal/common/observability"
	"business-registration/internal/models"
	"business-registration/internal/registration/form"
)

// Document status labels.
const (
	statusAccepted  = "accepted"
	statusMalformed = "malformed"
)

type HandlerDependencies struct {
	Logger        logger.Logger
	Observability *observability.Observability
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Handler serves the registration sink. It acknowledges every well-formed
// document and keeps nothing.
type Handler struct {
	logger logger.Logger
	obs    *observability.Observability
	errors *errors.ErrorHandler
	tracer trace.Tracer
}

func NewHandler(deps HandlerDependencies) *Handler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.Named("sink")

	tp := deps.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Handler{
		logger: log,
		obs:    deps.Observability,
		errors: errors.NewErrorHandler(log),
		tracer: tp.Tracer("business-registration/sink"),
	}
}

// RegisterBusiness accepts a registration payload. A traceparent header from
// the submitting client becomes the parent of the handler span.
func (h *Handler) RegisterBusiness(c *gin.Context) {
	start := time.Now()
	ctx := propagation.TraceContext{}.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
	ctx, span := h.tracer.Start(ctx, "sink.register_business", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var payload models.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errors.MsgPayloadUnprocessable)
		span.SetAttributes(attribute.String("document.status", statusMalformed))
		metrics.SinkDocumentsReceived.WithLabelValues(statusMalformed).Inc()
		h.obs.RecordDocumentReceived(ctx, statusMalformed, int(c.Request.ContentLength))
		h.obs.RecordDocumentDuration(ctx, time.Since(start), statusMalformed)
		h.errors.Respond(c, errors.NewMalformedPayloadError(err))
		return
	}

	h.logger.Info("Received business registration", map[string]interface{}{
		"businessName": payload.BusinessName,
		"email":        payload.Email,
		"postalCode":   payload.Address.PostalCode,
		"hours":        len(payload.BusinessHours),
		"services":     len(payload.Services),
		"traceId":      span.SpanContext().TraceID().String(),
	})

	span.SetAttributes(
		attribute.String("document.status", statusAccepted),
		attribute.Int("document.services", len(payload.Services)),
	)
	metrics.SinkDocumentsReceived.WithLabelValues(statusAccepted).Inc()
	h.obs.RecordDocumentReceived(ctx, statusAccepted, int(c.Request.ContentLength))
	h.obs.RecordDocumentDuration(ctx, time.Since(start), statusAccepted)

	c.JSON(http.StatusOK, models.Ack{Success: true})
}

// TagCatalog lists the tag vocabularies offered by the services editor.
func (h *Handler) TagCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": form.TagCatalog()})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
