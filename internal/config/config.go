package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the indicator engine
type Config struct {
	// Common
	Environment string
	LogLevel    string

	// Redis
	Redis RedisConfig

	// Engine
	Engine EngineConfig
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// EngineConfig holds indicator engine configuration
type EngineConfig struct {
	HealthCheckPort int

	// Streams
	QuoteStream   string
	OutputStream  string
	ConsumerGroup string

	BatchSize    int
	BlockTimeout time.Duration

	// Symbol allowlist; empty means accept every symbol seen on the stream
	Symbols []string

	// Default periods for the standard indicator set
	SMAPeriod        int
	EMAPeriod        int
	RSIPeriod        int
	ATRPeriod        int
	StochPeriod      int
	StochSmoothing   int
	MACDFast         int
	MACDSlow         int
	MACDSignal       int
	BollingerPeriod  int
	BollingerWidth   float64
	ROCPeriod        int
	EfficiencyPeriod int
	MFIPeriod        int
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory or parent directories
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Engine: EngineConfig{
			HealthCheckPort: getEnvAsInt("ENGINE_HEALTH_PORT", 8085),
			QuoteStream:     getEnv("ENGINE_QUOTE_STREAM", "quotes.finalized"),
			OutputStream:    getEnv("ENGINE_OUTPUT_STREAM", "indicators.updated"),
			ConsumerGroup:   getEnv("ENGINE_CONSUMER_GROUP", "ta-engine"),
			BatchSize:       getEnvAsInt("ENGINE_BATCH_SIZE", 100),
			BlockTimeout:    getEnvAsDuration("ENGINE_BLOCK_TIMEOUT", 5*time.Second),
			Symbols:         getEnvAsStringSlice("ENGINE_SYMBOLS", []string{}),

			SMAPeriod:        getEnvAsInt("ENGINE_SMA_PERIOD", 20),
			EMAPeriod:        getEnvAsInt("ENGINE_EMA_PERIOD", 20),
			RSIPeriod:        getEnvAsInt("ENGINE_RSI_PERIOD", 14),
			ATRPeriod:        getEnvAsInt("ENGINE_ATR_PERIOD", 14),
			StochPeriod:      getEnvAsInt("ENGINE_STOCH_PERIOD", 14),
			StochSmoothing:   getEnvAsInt("ENGINE_STOCH_SMOOTHING", 3),
			MACDFast:         getEnvAsInt("ENGINE_MACD_FAST", 12),
			MACDSlow:         getEnvAsInt("ENGINE_MACD_SLOW", 26),
			MACDSignal:       getEnvAsInt("ENGINE_MACD_SIGNAL", 9),
			BollingerPeriod:  getEnvAsInt("ENGINE_BOLLINGER_PERIOD", 20),
			BollingerWidth:   getEnvAsFloat("ENGINE_BOLLINGER_WIDTH", 2.0),
			ROCPeriod:        getEnvAsInt("ENGINE_ROC_PERIOD", 12),
			EfficiencyPeriod: getEnvAsInt("ENGINE_EFFICIENCY_PERIOD", 10),
			MFIPeriod:        getEnvAsInt("ENGINE_MFI_PERIOD", 14),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.Engine.QuoteStream == "" {
		return fmt.Errorf("ENGINE_QUOTE_STREAM is required")
	}
	if c.Engine.OutputStream == "" {
		return fmt.Errorf("ENGINE_OUTPUT_STREAM is required")
	}
	if c.Engine.QuoteStream == c.Engine.OutputStream {
		return fmt.Errorf("ENGINE_QUOTE_STREAM and ENGINE_OUTPUT_STREAM must differ")
	}
	if c.Engine.BatchSize <= 0 {
		return fmt.Errorf("ENGINE_BATCH_SIZE must be positive")
	}
	return nil
}

// RedisAddr returns the host:port address for the Redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Split by comma and trim spaces
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
