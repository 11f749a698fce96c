package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sportify-backend/pkg/logger"
)

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Razorpay RazorpayConfig
	Payment  PaymentConfig
	Supabase SupabaseConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// RazorpayConfig carries the gateway credentials.
// Empty credentials are allowed at start-up and reported per request.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	APIURL    string
	Timeout   time.Duration
}

type PaymentConfig struct {
	DefaultCurrency    string
	IdempotencyTTL     time.Duration
	VerifyOrderLinkage bool
	IssuedOrderTTL     time.Duration
}

type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string
	JWTSecret      string
	Timeout        time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Sportify Functions"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnvAny([]string{"KEY_ID", "RAZORPAY_KEY_ID"}, ""),
			KeySecret: getEnvAny([]string{"KEY_SECRET", "RAZORPAY_KEY_SECRET"}, ""),
			APIURL:    getEnv("RAZORPAY_API_URL", "https://api.razorpay.com"),
			Timeout:   getEnvDuration("GATEWAY_TIMEOUT", 10*time.Second),
		},
		Payment: PaymentConfig{
			DefaultCurrency:    strings.ToUpper(getEnv("DEFAULT_CURRENCY", "INR")),
			IdempotencyTTL:     getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
			VerifyOrderLinkage: getEnvBool("VERIFY_ORDER_LINKAGE", false),
			IssuedOrderTTL:     getEnvDuration("ISSUED_ORDER_TTL", 72*time.Hour),
		},
		Supabase: SupabaseConfig{
			URL:            strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			JWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
			Timeout:        getEnvDuration("SUPABASE_TIMEOUT", 10*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects values that make the process unusable.
// Missing gateway credentials only produce a warning in production.
func (c *Config) Validate() error {
	if c.Razorpay.Timeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be positive")
	}
	if c.Payment.IdempotencyTTL <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL must be positive")
	}
	if len(c.Payment.DefaultCurrency) != 3 {
		return fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter ISO 4217 code")
	}

	if c.App.Environment == "production" {
		if !c.Razorpay.HasCredentials() {
			logger.Warn("gateway credentials not set - order creation will fail", nil)
		}
		if c.Razorpay.KeySecret == "" {
			logger.Warn("KEY_SECRET not set - payment verification will fail", nil)
		}
		if !c.Supabase.Enabled() {
			logger.Warn("supabase settings incomplete - user provisioning disabled", nil)
		}
	}

	return nil
}

// HasCredentials reports whether both gateway credentials are present.
func (r RazorpayConfig) HasCredentials() bool {
	return r.KeyID != "" && r.KeySecret != ""
}

// Enabled reports whether every setting user provisioning needs is present.
func (s SupabaseConfig) Enabled() bool {
	return s.URL != "" && s.ServiceRoleKey != "" && s.JWTSecret != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAny(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
