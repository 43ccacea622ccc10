// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides Redis connection settings for the cart store.
type RedisConfig interface {
	GetRedisURL() string
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// PaystackConfig provides settings for the payment processor client.
// The secret key is server-held and must never reach a client response.
type PaystackConfig interface {
	GetPaystackSecretKey() string
	GetPaystackBaseURL() string
}

// CheckoutConfig provides settings for checkout amount aggregation.
type CheckoutConfig interface {
	GetShippingFeeNGN() float64
}

// CartConfig provides settings for the session cart store.
type CartConfig interface {
	GetCartTTL() time.Duration
	GetSessionCookieName() string
}

// EmailConfig provides settings for order-confirmation email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	DatabaseURL       string
	RedisURL          string
	AsynqQueueName    string
	AsynqConcurrency  int
	PaystackSecretKey string
	PaystackBaseURL   string
	ShippingFeeNGN    float64
	CartTTL           time.Duration
	SessionCookieName string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	EmailEnabled      bool
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	EmailFromName     string
	EmailFromAddress  string
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// RedisConfig / SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// PaystackConfig implementation
func (c *Config) GetPaystackSecretKey() string { return c.PaystackSecretKey }
func (c *Config) GetPaystackBaseURL() string   { return c.PaystackBaseURL }

// CheckoutConfig implementation
func (c *Config) GetShippingFeeNGN() float64 { return c.ShippingFeeNGN }

// CartConfig implementation
func (c *Config) GetCartTTL() time.Duration    { return c.CartTTL }
func (c *Config) GetSessionCookieName() string { return c.SessionCookieName }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:  mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		ShippingFeeNGN:    mustFloat(getEnv("SHIPPING_FEE_NGN", "2500")),
		CartTTL:           mustDuration(getEnv("CART_TTL", "168h")),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "storefront_session"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		EmailEnabled:      emailEnabled && smtpHost != "",
		SMTPHost:          smtpHost,
		SMTPPort:          mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Storefront"),
		EmailFromAddress:  getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.PaystackSecretKey == "" {
		return nil, fmt.Errorf("PAYSTACK_SECRET_KEY is required")
	}
	if cfg.ShippingFeeNGN < 0 {
		return nil, fmt.Errorf("SHIPPING_FEE_NGN cannot be negative")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
