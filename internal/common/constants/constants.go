package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 128
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	JWTSecretMinLength = 32

	SubscriberNameMaxLength = 256
	NewsletterTitleMaxBytes = 512
	DefaultMaxRequestSize   = 1 << 20

	// Argon2id parameters. Memory is in KiB.
	DefaultHashMemoryKB    = 15 * 1024
	DefaultHashTime        = 2
	DefaultHashParallelism = 1
	DefaultHashSaltLength  = 16
	DefaultHashKeyLength   = 32
	MinHashMemoryKB        = 8 * 1024

	DefaultVerifyWorkers   = 4
	DefaultVerifyQueueSize = 64

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 2 * time.Minute
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8000"
	DefaultRequestTimeout = 10 * time.Second
	DefaultAccessTokenTTL = 30 * time.Minute

	DefaultEmailSendTimeout = 10 * time.Second

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitLoginRequestsPerSecond     = 1
	RateLimitLoginBurst                 = 5
	RateLimitSubscribeRequestsPerSecond = 2
	RateLimitSubscribeBurst             = 10
	RateLimitPublishRequestsPerSecond   = 0.5
	RateLimitPublishBurst               = 2
	RateLimitGeneralRequestsPerSecond   = 20
	RateLimitGeneralBurst               = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
