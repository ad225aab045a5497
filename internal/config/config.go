package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	AppPort  string
	LogLevel string

	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	DBSSLMode      string
	DBMaxOpenConns int

	// Core data service.
	GravityURL   string
	GravityToken string

	// Commerce service.
	ExchangeURL   string
	ExchangeToken string

	CMSBucketURL string

	JWTSecret     string
	AllowedOrigin string

	UpstreamTimeout    time.Duration
	UpstreamMaxRetries int
	UpstreamRetryWait  time.Duration
	UpstreamRPS        float64

	CacheTTL      time.Duration
	CacheMaxCost  int64
	MaxQueryDepth int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   os.Getenv("APP_ENV"),
		AppPort:  envString("APP_PORT", "4000"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         envString("DB_PORT", "5432"),
		DBSSLMode:      envString("DB_SSLMODE", "disable"),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 10),

		GravityURL:    os.Getenv("GRAVITY_URL"),
		GravityToken:  os.Getenv("GRAVITY_TOKEN"),
		ExchangeURL:   os.Getenv("EXCHANGE_URL"),
		ExchangeToken: os.Getenv("EXCHANGE_TOKEN"),
		CMSBucketURL:  envString("CMS_BUCKET_URL", "mem://"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AllowedOrigin: envString("CORS_ORIGIN", "http://localhost:3000"),

		UpstreamTimeout:    envDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamMaxRetries: envInt("UPSTREAM_MAX_RETRIES", 2),
		UpstreamRetryWait:  envDuration("UPSTREAM_RETRY_WAIT", 100*time.Millisecond),
		UpstreamRPS:        envFloat("UPSTREAM_RPS", 50),

		CacheTTL:      envDuration("CACHE_TTL", time.Minute),
		CacheMaxCost:  int64(envInt("CACHE_MAX_COST", 10000)),
		MaxQueryDepth: envInt("MAX_QUERY_DEPTH", 12),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	return cfg
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	switch {
	case c.GravityURL == "":
		return errors.New("GRAVITY_URL is required")
	case c.ExchangeURL == "":
		return errors.New("EXCHANGE_URL is required")
	case c.DBHost == "":
		return errors.New("DB_HOST is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %v", key, v, def)
		return def
	}
	return f
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, def)
		return def
	}
	return d
}
