package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// GoatedConfig holds everything needed to talk to the external affiliate API.
type GoatedConfig struct {
	BaseURL        string
	Token          string
	RequestTimeout time.Duration
	MaxRetries     int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	CacheTTL       time.Duration
}

// DatabaseConfig for the postgres connection and migrations.
type DatabaseConfig struct {
	DSN            string
	Database       string
	MigrationsPath string
}

// RedisConfig for the cache and pub/sub connection.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// BucketConfig for the S3 bucket where scheduler logs are uploaded.
type BucketConfig struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// SyncConfig controls the periodic leaderboard synchronization.
type SyncConfig struct {
	Interval time.Duration
}

// BoostConfig is the targeted rank adjustment policy.
// An empty username disables the boost entirely.
type BoostConfig struct {
	Username   string
	TargetRank int
	MaxBoost   float64
}

// RaceConfig holds the wager race defaults.
type RaceConfig struct {
	TopN             int
	DefaultPrizePool float64
}

// Config is the full application configuration.
type Config struct {
	Goated   GoatedConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Bucket   BucketConfig
	Sync     SyncConfig
	Boost    BoostConfig
	Race     RaceConfig
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Goated: GoatedConfig{
			BaseURL:        getEnv("GOATED_API_URL", "https://api.goated.com/affiliate/referral-leaderboard"),
			Token:          os.Getenv("GOATED_API_TOKEN"),
			RequestTimeout: getDuration("GOATED_REQUEST_TIMEOUT", 30*time.Second),
			MaxRetries:     getInt("GOATED_MAX_RETRIES", 3),
			InitialDelay:   getDuration("GOATED_INITIAL_DELAY", time.Second),
			MaxDelay:       getDuration("GOATED_MAX_DELAY", 30*time.Second),
			CacheTTL:       getDuration("GOATED_CACHE_TTL", 15*time.Minute),
		},
		Database: DatabaseConfig{
			DSN:            os.Getenv("DATABASE_URL"),
			Database:       getEnv("DATABASE_NAME", "goatedvips"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Bucket: BucketConfig{
			Region:       os.Getenv("BUCKET_REGION"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			LogBucket:    os.Getenv("BUCKET_LOG_NAME"),
		},
		Sync: SyncConfig{
			Interval: getDuration("SYNC_INTERVAL", 15*time.Minute),
		},
		Boost: BoostConfig{
			Username:   os.Getenv("BOOST_USERNAME"),
			TargetRank: getInt("BOOST_TARGET_RANK", 3),
			MaxBoost:   getFloat("BOOST_MAX_AMOUNT", 10),
		},
		Race: RaceConfig{
			TopN:             getInt("RACE_TOP_N", 10),
			DefaultPrizePool: getFloat("RACE_DEFAULT_PRIZE_POOL", 500),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return cfg, nil
}

// getEnv returns the environment value or a fallback.
func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
