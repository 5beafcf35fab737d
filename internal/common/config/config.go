package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/driftmail/newsletter-backend/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidHashParams  = errors.New("invalid password hash parameters")
)

type ServerConfig struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	RequestTimeout time.Duration

	// Externally reachable base URL; confirmation links are built from it.
	AppBaseURL string

	// Outbound mail transport.
	EmailBaseURL     string
	EmailSender      string
	EmailAuthToken   string
	EmailSendTimeout time.Duration

	// Argon2id cost parameters shared by hashing and the fallback
	// verification branch.
	HashMemoryKB    uint32
	HashTime        uint32
	HashParallelism uint8

	// Password verification worker pool.
	VerifyWorkers   int
	VerifyQueueSize int
}

func LoadServerConfig() (ServerConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return ServerConfig{}, err
	}

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return ServerConfig{}, err
	}
	if len(jwtSecret) < constants.JWTSecretMinLength {
		return ServerConfig{}, ErrInvalidJWTSecret
	}

	emailBaseURL, err := mustEnv("EMAIL_BASE_URL")
	if err != nil {
		return ServerConfig{}, err
	}

	emailSender, err := mustEnv("EMAIL_SENDER")
	if err != nil {
		return ServerConfig{}, err
	}

	emailAuthToken, err := mustEnv("EMAIL_AUTH_TOKEN")
	if err != nil {
		return ServerConfig{}, err
	}

	cfg := ServerConfig{
		HTTPPort:         envString("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:      databaseURL,
		JWTSecret:        jwtSecret,
		AccessTokenTTL:   envDuration("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		RequestTimeout:   envDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		AppBaseURL:       envString("APP_BASE_URL", "http://localhost:"+envString("HTTP_PORT", constants.DefaultHTTPPort)),
		EmailBaseURL:     emailBaseURL,
		EmailSender:      emailSender,
		EmailAuthToken:   emailAuthToken,
		EmailSendTimeout: envDuration("EMAIL_SEND_TIMEOUT", constants.DefaultEmailSendTimeout),
		HashMemoryKB:     uint32(envInt("HASH_MEMORY_KB", constants.DefaultHashMemoryKB)),
		HashTime:         uint32(envInt("HASH_TIME", constants.DefaultHashTime)),
		HashParallelism:  uint8(envInt("HASH_PARALLELISM", constants.DefaultHashParallelism)),
		VerifyWorkers:    envInt("VERIFY_WORKERS", constants.DefaultVerifyWorkers),
		VerifyQueueSize:  envInt("VERIFY_QUEUE_SIZE", constants.DefaultVerifyQueueSize),
	}

	if cfg.HashMemoryKB < constants.MinHashMemoryKB || cfg.HashTime < 1 || cfg.HashParallelism < 1 {
		return ServerConfig{}, ErrInvalidHashParams
	}
	if cfg.VerifyWorkers < 1 || cfg.VerifyQueueSize < 1 {
		return ServerConfig{}, fmt.Errorf("VERIFY_WORKERS and VERIFY_QUEUE_SIZE must be positive")
	}

	return cfg, nil
}

func mustEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
