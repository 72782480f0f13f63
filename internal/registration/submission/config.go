package submission

import (
	"fmt"
	"net/url"
	"time"

	"business-registration/internal/common/config"
)

type Config struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint: config.DefaultSubmissionEndpoint,
	}
}

// ConfigFrom maps the submission section of the application config.
func ConfigFrom(cfg config.SubmissionConfig) *Config {
	return &Config{
		Endpoint: cfg.Endpoint,
		Timeout:  config.GetDuration(cfg.Timeout),
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute URL")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
