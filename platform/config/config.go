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

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GeminiConfig provides settings for the Gemini generation endpoint.
// The endpoint, credentials and model identifier are injected explicitly;
// the pipeline never reads ambient process state.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGenerateTimeout() time.Duration
	GetGenerateMaxTokens() int32
	GetGenerateTemperature() float32
}

// EstimateConfig provides pricing defaults for the estimates module.
type EstimateConfig interface {
	GetDefaultMarginPercent() float64
	GetStandardTaxRate() float64
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	JWTAccessSecret      string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	GeminiAPIKey         string
	GeminiModel          string
	GenerateTimeout      time.Duration
	GenerateMaxTokens    int32
	GenerateTemperature  float32
	DefaultMarginPercent float64
	StandardTaxRate      float64
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GeminiConfig implementation
func (c *Config) GetGeminiAPIKey() string             { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string              { return c.GeminiModel }
func (c *Config) GetGenerateTimeout() time.Duration   { return c.GenerateTimeout }
func (c *Config) GetGenerateMaxTokens() int32         { return c.GenerateMaxTokens }
func (c *Config) GetGenerateTemperature() float32     { return c.GenerateTemperature }

// EstimateConfig implementation
func (c *Config) GetDefaultMarginPercent() float64 { return c.DefaultMarginPercent }
func (c *Config) GetStandardTaxRate() float64      { return c.StandardTaxRate }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GenerateTimeout:      mustDuration(getEnv("GENERATE_TIMEOUT", "60s")),
		GenerateMaxTokens:    int32(mustInt64(getEnv("GENERATE_MAX_TOKENS", "8192"))),
		GenerateTemperature:  float32(mustFloat64(getEnv("GENERATE_TEMPERATURE", "0.2"))),
		DefaultMarginPercent: mustFloat64(getEnv("DEFAULT_MARGIN_PERCENT", "20")),
		StandardTaxRate:      mustFloat64(getEnv("STANDARD_TAX_RATE", "21")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.GenerateTimeout <= 0 {
		return nil, fmt.Errorf("GENERATE_TIMEOUT must be a positive duration")
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

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat64(value string) float64 {
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
