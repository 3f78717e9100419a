package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"atelier/internal/tracking/models"
)

// EnvPrefix namespaces every variable: ATELIER_ADDR, ATELIER_LOG_LEVEL, ...
const EnvPrefix = "ATELIER"

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	Environment    Environment   `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	// TrustedProxies lists CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	IPLookup IPLookup `envconfig:"IP_LOOKUP"`

	// ActivityLimit lowers the activity log cap; it can never exceed 100.
	ActivityLimit int `envconfig:"ACTIVITY_LIMIT" default:"100"`
}

// IPLookup configures the IP geolocation fallback.
type IPLookup struct {
	URL string `envconfig:"URL" default:"https://ipapi.co"`
	// Timeout of zero leaves lookups bounded only by the request.
	Timeout          time.Duration `envconfig:"TIMEOUT" default:"0s"`
	BreakerThreshold int           `envconfig:"BREAKER_THRESHOLD" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s"`
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file in the working directory is loaded first when present;
// real environment variables win over it.
func FromEnv() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return Process()
}

// Process reads configuration from the environment only.
func Process() (Server, error) {
	var cfg Server
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Server{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Server) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported %s_ENVIRONMENT: %q", EnvPrefix, c.Environment)
	}
	if c.ActivityLimit < 1 || c.ActivityLimit > models.MaxActivities {
		return fmt.Errorf("%s_ACTIVITY_LIMIT must be between 1 and %d, got %d", EnvPrefix, models.MaxActivities, c.ActivityLimit)
	}
	if c.IPLookup.Timeout < 0 {
		return fmt.Errorf("%s_IP_LOOKUP_TIMEOUT must not be negative", EnvPrefix)
	}
	if c.IPLookup.BreakerThreshold < 1 {
		return fmt.Errorf("%s_IP_LOOKUP_BREAKER_THRESHOLD must be positive", EnvPrefix)
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Server) IsProduction() bool {
	return c.Environment == EnvProduction
}
