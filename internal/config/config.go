// Package config provides configuration management for the ticket notifier.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Supported email providers
const (
	ProviderSMTP    = "smtp"
	ProviderConsole = "console"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	SMTP      SMTPConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// SMTPConfig holds the relay settings used for every delivery.
// Host, Username and Password may be empty here; the delivery client reports
// an incomplete relay configuration per request instead of refusing to start.
type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	Timeout            time.Duration // Bounds dial, STARTTLS, auth and submission
	InsecureSkipVerify bool          // Accept self-signed relay certificates
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	Provider    string // Email provider: "smtp" or "console"
	FromAddress string // Sender email address, defaults to the SMTP username
	FromName    string // Sender display name
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	PerMinute int64  // Requests per minute per IP, 0 disables limiting
	RedisURL  string // Shared limiter store, in-memory when empty
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	username, err := ReadSecret("SMTP_USER")
	if err != nil {
		return nil, err
	}
	password, err := ReadSecret("SMTP_PASSWORD")
	if err != nil {
		return nil, err
	}
	redisURL, err := ReadSecret("RATE_LIMIT_REDIS_URL")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		SMTP: SMTPConfig{
			Host:               strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port:               getEnvAsInt("SMTP_PORT", 587),
			Username:           strings.TrimSpace(username),
			Password:           password,
			Timeout:            getEnvAsDuration("SMTP_TIMEOUT", "10s"),
			InsecureSkipVerify: getEnvAsBool("SMTP_TLS_INSECURE_SKIP_VERIFY", false),
		},
		Email: EmailConfig{
			Provider: strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderSMTP)),
			FromName: os.Getenv("EMAIL_FROM_NAME"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: int64(getEnvAsInt("RATE_LIMIT_PER_MINUTE", 0)),
			RedisURL:  strings.TrimSpace(redisURL),
		},
	}
	cfg.Email.FromAddress = getEnv("EMAIL_FROM_ADDRESS", cfg.SMTP.Username)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid.
// Missing relay credentials are not an error here.
func (c *Config) Validate() error {
	switch c.Email.Provider {
	case ProviderSMTP, ProviderConsole:
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q: must be %q or %q", c.Email.Provider, ProviderSMTP, ProviderConsole)
	}

	if c.RateLimit.PerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}

	if c.RateLimit.RedisURL != "" {
		if _, err := redis.ParseURL(c.RateLimit.RedisURL); err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_REDIS_URL: %w", err)
		}
	}
	return nil
}

// IsComplete reports whether every value needed to open a relay session is set
func (s *SMTPConfig) IsComplete() bool {
	return s.Host != "" && s.Port > 0 && s.Username != "" && s.Password != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}
