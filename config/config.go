package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client kit and the demo server read from
// the environment.
type Config struct {
	Env string

	// Client kit
	APIBaseURL      string
	ConnectTimeout  time.Duration
	RequestTimeout  time.Duration
	TokenKey        string
	RefreshTokenKey string
	TokenFile       string
	RedisURL        string

	// Demo server
	Port        string
	JWTSecret   string
	DatabaseURL string
}

func Load() Config {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	return Config{
		Env:             getEnv("APP_ENV", "development"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8086"),
		ConnectTimeout:  getDuration("CONNECT_TIMEOUT", 5*time.Second),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 15*time.Second),
		TokenKey:        getEnv("TOKEN_KEY", "auth.token"),
		RefreshTokenKey: getEnv("REFRESH_TOKEN_KEY", "auth.refresh"),
		TokenFile:       getEnv("TOKEN_FILE", ".storefront-tokens.json"),
		RedisURL:        getEnv("REDIS_URL", ""),
		Port:            getEnv("PORT", "8086"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return defaultVal
}
