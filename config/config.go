package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Port        string
	CORSOrigins string

	// StorageDriver is one of memory, mysql or postgres.
	StorageDriver string
	DatabaseDSN   string
	SeedOnStart   bool

	// SessionDriver is memory or redis.
	SessionDriver string
	Redis         RedisConfig
	JWTSecret     string
	SessionTTL    time.Duration

	LoginRateLimit string

	SimulatedLatency   time.Duration
	GeolocationTimeout time.Duration
	RequiredHours      float64

	OfficeLatitude     float64
	OfficeLongitude    float64
	OfficeRadiusMeters float64

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// Load reads the configuration from the environment and warns about
// defaults that are unsafe outside development.
func Load() *Config {
	cfg := &Config{
		Port:        GetEnv("PORT", "3000"),
		CORSOrigins: GetEnv("CORS_ALLOWED_ORIGINS", "*"),

		StorageDriver: GetEnv("STORAGE_DRIVER", "memory"),
		DatabaseDSN:   GetEnv("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/employee_portal?charset=utf8mb4&parseTime=True&loc=Local"),
		SeedOnStart:   GetEnvAsBool("SEED_ON_START", false),

		SessionDriver: GetEnv("SESSION_DRIVER", "memory"),
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		JWTSecret:  GetEnv("JWT_SECRET", defaultJWTSecret),
		SessionTTL: GetEnvAsDuration("SESSION_TTL", 24*time.Hour),

		LoginRateLimit: GetEnv("LOGIN_RATE_LIMIT", "10-M"),

		SimulatedLatency:   GetEnvAsDuration("SIMULATED_LATENCY", 0),
		GeolocationTimeout: GetEnvAsDuration("GEOLOCATION_TIMEOUT", 10*time.Second),
		RequiredHours:      GetEnvAsFloat("REQUIRED_HOURS", 8),

		OfficeLatitude:     GetEnvAsFloat("OFFICE_LATITUDE", 0),
		OfficeLongitude:    GetEnvAsFloat("OFFICE_LONGITUDE", 0),
		OfficeRadiusMeters: GetEnvAsFloat("OFFICE_RADIUS_METERS", 0),

		SMTP: SMTPConfig{
			Host:     GetEnv("SMTP_HOST", ""),
			Port:     GetEnvAsInt("SMTP_PORT", 587),
			Username: GetEnv("SMTP_USERNAME", ""),
			Password: GetEnv("SMTP_PASSWORD", ""),
			From:     GetEnv("SMTP_FROM", "no-reply@company.com"),
		},
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("[WARN] JWT_SECRET is not set, using the development default")
	}
	if cfg.StorageDriver == "memory" {
		log.Println("[WARN] STORAGE_DRIVER=memory, data is lost on restart")
	}
	return cfg
}

// Helper function to get environment variable with fallback default value.
// An empty variable counts as unset.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(GetEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsDuration accepts Go durations such as "1s" or "500ms".
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
