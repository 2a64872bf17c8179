package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port                int    `env:"PORT" envDefault:"8080"`
	APIBaseURL          string `env:"API_BASE_URL,required"`
	AdminSecret         string `env:"ADMIN_SECRET"`
	DatabaseURL         string `env:"DATABASE_URL,required"`
	RedisURL            string `env:"REDIS_URL,required"`
	PollIntervalSeconds int    `env:"POLL_INTERVAL_SECONDS" envDefault:"30"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// APIURL builds an absolute upstream URL from a relative path and an optional
// query parameter map. The base URL may or may not carry a trailing slash.
func (c *Config) APIURL(path string, query map[string]string) string {
	base := strings.TrimRight(c.APIBaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	full := base + path
	if len(query) == 0 {
		return full
	}

	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	return full + "?" + values.Encode()
}

func (c *Config) Validate(isProduction bool) error {
	if c.APIBaseURL != "" {
		parsed, err := url.Parse(c.APIBaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
		}
	}

	if c.PollIntervalSeconds < 5 {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be at least 5, got %d", c.PollIntervalSeconds)
	}

	if isProduction {
		if err := validateSecret("ADMIN_SECRET", c.AdminSecret); err != nil {
			return err
		}
		if strings.HasPrefix(c.APIBaseURL, "http://") {
			log.Warn().Msg("API_BASE_URL uses http:// in production: tokens will travel in cleartext")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if value == "" {
		return nil
	}
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
