package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server configuration
type Config struct {
	Host                string
	Port                int
	MaxPrice            float64
	MaxShares           float64
	MaxBatchSize        int
	MaxBatchConcurrency int
	CORSAllowedOrigins  []string
	OTELEndpoint        string
	OTELServiceName     string
	LogLevel            string
	Defaults            Defaults
}

// Defaults are the values the calculator form starts with. They are applied
// by callers when a field is omitted, never by the calculation core.
type Defaults struct {
	DiscountPercentage        float64
	FederalIncomeTaxRate      float64
	StateIncomeTaxRate        float64
	LongTermCapitalGainsRate  float64
	ShortTermCapitalGainsRate float64
}

// LoadConfig loads configuration from the environment
func LoadConfig() (*Config, error) {
	// Load .env if present; a missing file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Host:                getEnvString("HOST", ""),
		Port:                getEnvInt("PORT", 8000),
		MaxPrice:            getEnvFloat("MAX_PRICE", 1e7),
		MaxShares:           getEnvFloat("MAX_SHARES", 1e9),
		MaxBatchSize:        getEnvInt("MAX_BATCH_SIZE", 100),
		MaxBatchConcurrency: getEnvInt("MAX_BATCH_CONCURRENCY", 8),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		OTELEndpoint:        getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:     getEnvString("OTEL_SERVICE_NAME", "mcp-espp-server"),
		LogLevel:            getEnvString("LOG_LEVEL", "INFO"),
		Defaults: Defaults{
			DiscountPercentage:        getEnvFloat("DEFAULT_DISCOUNT_PERCENT", 15),
			FederalIncomeTaxRate:      getEnvFloat("DEFAULT_FEDERAL_RATE", 0.24),
			StateIncomeTaxRate:        getEnvFloat("DEFAULT_STATE_RATE", 0.05),
			LongTermCapitalGainsRate:  getEnvFloat("DEFAULT_LONG_TERM_RATE", 0.15),
			ShortTermCapitalGainsRate: getEnvFloat("DEFAULT_SHORT_TERM_RATE", 0.24),
		},
	}

	return cfg, nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
