package submission

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	httpclient "business-registration/internal/common/http"
	"business-registration/internal/common/logger"
)

// Ack is returned when the sink answered with a 2xx status.
type Ack struct {
	Success    bool          `json:"success"`
	StatusCode int           `json:"statusCode"`
	ReceivedAt time.Time     `json:"receivedAt"`
	Duration   time.Duration `json:"duration"`
}

type ServiceDependencies struct {
	Logger logger.Logger
	// Client overrides the HTTP client built from Config.Timeout.
	Client *httpclient.Client
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}
