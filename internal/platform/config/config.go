package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Stock cache backend: "pgsql" keeps the projection in Postgres,
	// "redis" keeps it in Redis.
	CacheBackend  string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Rate limiting for write endpoints.
	WriteRateLimitPeriod time.Duration
	WriteRateLimitCount  int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CACHE_BACKEND", "pgsql")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("WRITE_RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("WRITE_RATE_LIMIT_COUNT", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.CacheBackend = viper.GetString("CACHE_BACKEND")
	if cfg.CacheBackend != "pgsql" && cfg.CacheBackend != "redis" {
		log.Printf("Warning: Invalid CACHE_BACKEND (%q). Defaulting to pgsql.\n", cfg.CacheBackend)
		cfg.CacheBackend = "pgsql"
	}
	cfg.RedisHost = viper.GetString("REDIS_HOST")
	cfg.RedisPort = viper.GetString("REDIS_PORT")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	rateLimitPeriodStr := viper.GetString("WRITE_RATE_LIMIT_PERIOD")
	rateLimitPeriod, err := time.ParseDuration(rateLimitPeriodStr)
	if err != nil {
		rateLimitPeriod = time.Minute
		if rateLimitPeriodStr != "" {
			log.Printf("Warning: Invalid value for WRITE_RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", rateLimitPeriodStr, rateLimitPeriod.String())
		}
	}
	cfg.WriteRateLimitPeriod = rateLimitPeriod
	cfg.WriteRateLimitCount = viper.GetInt64("WRITE_RATE_LIMIT_COUNT")
	if cfg.WriteRateLimitCount <= 0 {
		cfg.WriteRateLimitCount = 300
	}

	return cfg, nil
}
