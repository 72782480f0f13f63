package sink

import (
	"fmt"

	"golang.org/x/time/rate"

	"business-registration/internal/common/config"
)

type Config struct {
	MaxBodyBytes      int64
	AllowedOrigins    []string
	RateLimitEnabled  bool
	RequestsPerMinute int
	Burst             int
}

func DefaultConfig() *Config {
	return &Config{
		MaxBodyBytes:      1 << 20,
		AllowedOrigins:    []string{"*"},
		RateLimitEnabled:  true,
		RequestsPerMinute: 60,
		Burst:             10,
	}
}

// ConfigFrom maps the server section of the application config.
func ConfigFrom(cfg config.ServerConfig) *Config {
	return &Config{
		MaxBodyBytes:      cfg.MaxBodyBytes,
		AllowedOrigins:    cfg.AllowedOrigins,
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
	}
}

func (c *Config) Validate() error {
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.RateLimitEnabled {
		if c.RequestsPerMinute <= 0 {
			return fmt.Errorf("requests per minute must be positive")
		}
		if c.Burst <= 0 {
			return fmt.Errorf("burst must be positive")
		}
	}
	return nil
}

func (c *Config) limit() rate.Limit {
	return rate.Limit(float64(c.RequestsPerMinute) / 60)
}
