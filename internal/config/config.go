package config

import (
	"log"
	"os"
	"time"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	RedisURL    string
	FrontendURL string

	JWTSecret          string
	SessionSecret      string
	TokenEncryptionKey string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	UploadDir     string
	RestaurantDir string

	OrderWebhookURL    string
	OrderWebhookSecret string
	OrderWebhookStub   bool

	SweepSchedule    string
	StaleOrderMaxAge time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Env:         getEnvWithDefault("ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		FrontendURL: getEnvWithDefault("FRONTEND_URL", "http://localhost:5173"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		TokenEncryptionKey: os.Getenv("TOKEN_ENCRYPTION_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  getEnvWithDefault("GOOGLE_CALLBACK_URL", "http://localhost:8080/api/auth/google/callback"),

		UploadDir:     getEnvWithDefault("UPLOAD_DIR", "./uploads"),
		RestaurantDir: getEnvWithDefault("RESTAURANT_DIR", "./restaurants"),

		OrderWebhookURL:    os.Getenv("ORDER_WEBHOOK_URL"),
		OrderWebhookSecret: os.Getenv("ORDER_WEBHOOK_SECRET"),
		OrderWebhookStub:   getEnvWithDefault("ORDER_WEBHOOK_STUB", "true") == "true",

		SweepSchedule: getEnvWithDefault("SWEEP_SCHEDULE", "0 * * * *"),

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),
	}

	// Warn if using default session secret (insecure for production)
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production-use-openssl-rand-hex-32"
		log.Println("WARNING: Using default SESSION_SECRET. Generate a secure secret with: openssl rand -hex 32")
	}

	maxAge := getEnvWithDefault("STALE_ORDER_MAX_AGE", "24h")
	d, err := time.ParseDuration(maxAge)
	if err != nil {
		log.Printf("WARNING: Invalid STALE_ORDER_MAX_AGE %q, using 24h", maxAge)
		d = 24 * time.Hour
	}
	cfg.StaleOrderMaxAge = d

	return cfg
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
