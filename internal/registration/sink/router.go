package sink

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the sink routes and middleware.
func NewRouter(h *Handler, cfg *Config) (*gin.Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sink config: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/catalog/tags", h.TagCatalog)

		business := api.Group("/business")
		if cfg.RateLimitEnabled {
			business.Use(rateLimit(newLimiterStore(cfg.limit(), cfg.Burst), h.errors))
		}
		business.Use(limitBody(cfg.MaxBodyBytes))
		business.POST("", h.RegisterBusiness)
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}

func requestLogger(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("Request handled", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"clientIp":   c.ClientIP(),
			"durationMs": time.Since(start).Milliseconds(),
		})
	}
}
