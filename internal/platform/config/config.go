package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultTreasuryBaseURL is the Treasury Reporting Rates of Exchange endpoint.
const DefaultTreasuryBaseURL = "https://api.fiscaldata.treasury.gov/services/api/fiscal_service/v1/accounting/od/rates_of_exchange"

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Treasury rates of exchange API
	TreasuryBaseURL            string
	TreasuryTimeout            time.Duration
	TreasuryRateLimitPerSecond float64
	TreasuryUserAgent          string
	RateLookbackDays           int

	// Rate cache
	RateCacheTTL  time.Duration
	CacheBackend  string
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Resilience policy around upstream calls
	RetryMaxRetries         int
	RetryBaseDelay          time.Duration
	BreakerFailureThreshold uint32
	BreakerOpenDuration     time.Duration

	// HTTP surface
	APIRateLimit       string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),

		TreasuryBaseURL:            v.GetString("TREASURY_BASE_URL"),
		TreasuryRateLimitPerSecond: v.GetFloat64("TREASURY_RATE_LIMIT_PER_SECOND"),
		TreasuryUserAgent:          v.GetString("TREASURY_USER_AGENT"),
		RateLookbackDays:           v.GetInt("RATE_LOOKBACK_DAYS"),

		CacheBackend:  strings.ToLower(v.GetString("CACHE_BACKEND")),
		RedisAddress:  v.GetString("REDIS_ADDRESS"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		RetryMaxRetries:         v.GetInt("RETRY_MAX_RETRIES"),
		BreakerFailureThreshold: v.GetUint32("BREAKER_FAILURE_THRESHOLD"),

		APIRateLimit: v.GetString("API_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.TreasuryTimeout = durationOrDefault(v, "TREASURY_TIMEOUT", 30*time.Second)
	cfg.RateCacheTTL = durationOrDefault(v, "RATE_CACHE_TTL", 24*time.Hour)
	cfg.RetryBaseDelay = durationOrDefault(v, "RETRY_BASE_DELAY", 2*time.Second)
	cfg.BreakerOpenDuration = durationOrDefault(v, "BREAKER_OPEN_DURATION", 30*time.Second)

	switch cfg.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.RedisAddress == "" {
			log.Println("Warning: CACHE_BACKEND=redis but REDIS_ADDRESS is not set. Falling back to memory.")
			cfg.CacheBackend = CacheBackendMemory
		}
	default:
		log.Printf("Warning: Invalid value for CACHE_BACKEND ('%s'). Defaulting to %s.\n", cfg.CacheBackend, CacheBackendMemory)
		cfg.CacheBackend = CacheBackendMemory
	}

	if cfg.RateLookbackDays <= 0 {
		log.Printf("Warning: Invalid value for RATE_LOOKBACK_DAYS (%d). Defaulting to 180.\n", cfg.RateLookbackDays)
		cfg.RateLookbackDays = 180
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("TREASURY_BASE_URL", DefaultTreasuryBaseURL)
	v.SetDefault("TREASURY_TIMEOUT", "30s")
	v.SetDefault("TREASURY_RATE_LIMIT_PER_SECOND", 5)
	v.SetDefault("TREASURY_USER_AGENT", "purchase-fx-app/1.0")
	v.SetDefault("RATE_LOOKBACK_DAYS", 180)
	v.SetDefault("RATE_CACHE_TTL", "24h")
	v.SetDefault("CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RETRY_MAX_RETRIES", 3)
	v.SetDefault("RETRY_BASE_DELAY", "2s")
	v.SetDefault("BREAKER_FAILURE_THRESHOLD", 5)
	v.SetDefault("BREAKER_OPEN_DURATION", "30s")
	v.SetDefault("API_RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
