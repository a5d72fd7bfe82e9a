package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Auth Config. AuthMode picks exactly one verification strategy per
	// deployment: "jwt" (legacy login surface) or "firebase" (ID tokens).
	AuthMode            string        `env:"AUTH_MODE" envDefault:"jwt"`
	JWTSecret           string        `env:"JWT_SECRET"`
	JWTTTL              time.Duration `env:"JWT_TTL" envDefault:"1h"`
	FirebaseCredentials string        `env:"FIREBASE_CREDENTIALS"`

	// Media storage Config
	StorageBucket string `env:"STORAGE_BUCKET"`
	MediaMaxBytes int64  `env:"MEDIA_MAX_BYTES" envDefault:"10485760"`

	// Geocoding Config. Geocoder is "nominatim" or "google".
	Geocoder       string        `env:"GEOCODER" envDefault:"nominatim"`
	NominatimURL   string        `env:"NOMINATIM_URL" envDefault:"https://nominatim.openstreetmap.org"`
	MapsAPIKey     string        `env:"MAPS_API_KEY"`
	GeocodeTimeout time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"5s"`

	// Submission Config
	LocationTimeout time.Duration `env:"LOCATION_TIMEOUT" envDefault:"10s"`

	// Feed Config
	FeedSnapshotLimit int           `env:"FEED_SNAPSHOT_LIMIT" envDefault:"500"`
	FeedCacheTTL      time.Duration `env:"FEED_CACHE_TTL" envDefault:"30s"`
}

// LoadConfig reads configuration from environment variables and an optional
// .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		AuthMode:            getEnv("AUTH_MODE", "jwt"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTTTL:              getEnvAsDuration("JWT_TTL", time.Hour),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		StorageBucket:       os.Getenv("STORAGE_BUCKET"),
		MediaMaxBytes:       getEnvAsInt64("MEDIA_MAX_BYTES", 10<<20),
		Geocoder:            getEnv("GEOCODER", "nominatim"),
		NominatimURL:        getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		MapsAPIKey:          os.Getenv("MAPS_API_KEY"),
		GeocodeTimeout:      getEnvAsDuration("GEOCODE_TIMEOUT", 5*time.Second),
		LocationTimeout:     getEnvAsDuration("LOCATION_TIMEOUT", 10*time.Second),
		FeedSnapshotLimit:   getEnvAsInt("FEED_SNAPSHOT_LIMIT", 500),
		FeedCacheTTL:        getEnvAsDuration("FEED_CACHE_TTL", 30*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	switch cfg.AuthMode {
	case "jwt":
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case "firebase":
		if cfg.FirebaseCredentials == "" {
			return nil, fmt.Errorf("FIREBASE_CREDENTIALS is required when AUTH_MODE=firebase")
		}
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns an environment variable parsed as int or a default.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 returns an environment variable parsed as int64 or a default.
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration returns an environment variable parsed as time.Duration or a default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
