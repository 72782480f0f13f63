package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"business-registration/internal/common/errors"
	"business-registration/internal/common/logger"
	"business-registration/internal/models"
	"business-registration/internal/registration/form"
	"business-registration/internal/registration/submission"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Test Helpers
// ==========================

func newTestRouter(t *testing.T, cfg *Config) *gin.Engine {
	t.Helper()
	h := NewHandler(HandlerDependencies{Logger: logger.NewTestLogger(t)})
	r, err := NewRouter(h, cfg)
	require.NoError(t, err)
	return r
}

func post(r http.Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/business", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validPayload(t *testing.T) []byte {
	t.Helper()
	rating := 4.5
	p := models.Payload{
		BusinessName:  "Mr Cat Academy",
		Description:   "Small group tuition for primary students.",
		Email:         "hello@mrcat.sg",
		AverageRating: &rating,
		Address: models.PayloadAddress{
			StreetName: "Tampines Avenue 5",
			PostalCode: "529651",
			Latitude:   1.353,
			Longitude:  103.94,
		},
		BusinessHours: form.DefaultHours(),
		Services:      []models.PayloadService{},
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return b
}

// ==========================
// Endpoint Tests
// ==========================

func TestRegisterBusiness_Accepts(t *testing.T) {
	r := newTestRouter(t, nil)
	w := post(r, validPayload(t))

	assert.Equal(t, http.StatusOK, w.Code)
	var ack models.Ack
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.True(t, ack.Success)
}

func TestRegisterBusiness_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `businessName=x`},
		{"truncated", `{"businessName":`},
		{"wrong type", `{"address":{"latitude":"north"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, nil)
			w := post(r, []byte(tt.body))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var body models.SinkError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Failed to process business data", body.Error)
		})
	}
}

func newTracedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	h := NewHandler(HandlerDependencies{Logger: logger.NewTestLogger(t), TracerProvider: tp})
	r, err := NewRouter(h, nil)
	require.NoError(t, err)
	return r, rec, tp
}

func endedSpan(t *testing.T, rec *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range rec.Ended() {
		if span.Name() == name {
			return span
		}
	}
	require.Failf(t, "span not recorded", "no ended span named %s", name)
	return nil
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) string {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestRegisterBusiness_SpanJoinsCallerTrace(t *testing.T) {
	r, rec, tp := newTracedRouter(t)

	ctx, parent := tp.Tracer("client").Start(context.Background(), "client.submit")
	req := httptest.NewRequest(http.MethodPost, "/api/business", bytes.NewReader(validPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	parent.End()
	require.Equal(t, http.StatusOK, w.Code)

	span := endedSpan(t, rec, "sink.register_business")
	assert.Equal(t, parent.SpanContext().TraceID(), span.SpanContext().TraceID())
	assert.Equal(t, parent.SpanContext().SpanID(), span.Parent().SpanID())
	assert.Equal(t, "accepted", spanAttr(span, "document.status"))
	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestRegisterBusiness_MalformedSpanIsError(t *testing.T) {
	r, rec, _ := newTracedRouter(t)

	w := post(r, []byte(`{"businessName":`))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	span := endedSpan(t, rec, "sink.register_business")
	assert.False(t, span.Parent().IsValid(), "no caller trace means a root span")
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "malformed", spanAttr(span, "document.status"))
	assert.NotEmpty(t, span.Events(), "the decode error is recorded")
}

func TestRegisterBusiness_BodyTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 16
	r := newTestRouter(t, cfg)

	w := post(r, validPayload(t))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRegisterBusiness_RateLimited(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequestsPerMinute = 1
	cfg.Burst = 2
	r := newTestRouter(t, cfg)

	body := validPayload(t)
	assert.Equal(t, http.StatusOK, post(r, body).Code)
	assert.Equal(t, http.StatusOK, post(r, body).Code)

	w := post(r, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var sinkErr models.SinkError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sinkErr))
	assert.Equal(t, "Too many requests", sinkErr.Error)
}

func TestTagCatalogAndHealth(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/tags", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Categories []form.TagCategory `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Categories, len(form.TagCatalog()))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"http://localhost:5173"}
	r := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/business", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Burst = 0
	assert.Error(t, cfg.Validate())

	cfg.RateLimitEnabled = false
	assert.NoError(t, cfg.Validate())
}

// ==========================
// Round trip with the coordinator
// ==========================

func TestCoordinatorAgainstSink(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	coord, err := submission.NewCoordinator(
		submission.ServiceDependencies{Logger: logger.NewTestLogger(t)},
		&submission.Config{Endpoint: srv.URL + "/api/business"},
	)
	require.NoError(t, err)

	doc := form.NewDocument()
	doc.BusinessName = "Mr Cat Academy"
	doc.Description = "Small group tuition for primary students."
	doc.Email = "hello@mrcat.sg"
	doc.Address = models.Address{
		BuildingName: "Tampines Hub",
		StreetName:   "Tampines Avenue 5",
		UnitNumber:   "#02-11",
		PostalCode:   "529651",
		Latitude:     "1.353",
		Longitude:    "103.94",
	}
	doc.Address.FullAddress = form.ComposeFullAddress(doc.Address)
	doc.Services = append(doc.Services, form.NewService())

	ack, err := coord.Submit(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, ack.Success)

	bad, err := submission.NewCoordinator(
		submission.ServiceDependencies{Logger: logger.NewTestLogger(t)},
		&submission.Config{Endpoint: srv.URL + "/api/missing"},
	)
	require.NoError(t, err)
	_, err = bad.Submit(context.Background(), doc)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSubmissionFailed))
}
