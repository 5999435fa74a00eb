package config

import (
	"os"
	"strconv"
	"time"
)

// Settings holds the application configuration. It is built once at
// startup and handed to every component that needs it.
type Settings struct {
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTKey          string
	JWTAlgorithm    string
	JWTTTL          time.Duration
	RefreshTokenTTL time.Duration

	// Requests allowed per client address per 60s window.
	RateLimit int
}

// Load reads configuration from environment variables or sets defaults.
func Load() (*Settings, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, err
	}

	jwtTTL, err := strconv.Atoi(getEnv("JWT_TTL_SEC", "900"))
	if err != nil {
		return nil, err
	}

	refreshTTL, err := strconv.Atoi(getEnv("REFRESH_TOKEN_TTL_SEC", "604800"))
	if err != nil {
		return nil, err
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT", "100"))
	if err != nil {
		return nil, err
	}

	return &Settings{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", "sqlite://reddit.db"),
		RedisAddr:       getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PWD", ""),
		RedisDB:         redisDB,
		JWTKey:          getEnv("JWT_KEY", "dev-secret"),
		JWTAlgorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		JWTTTL:          time.Duration(jwtTTL) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTTL) * time.Second,
		RateLimit:       rateLimit,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
