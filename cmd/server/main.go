package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/driftmail/newsletter-backend/internal/auth/http"
	authrepo "github.com/driftmail/newsletter-backend/internal/auth/repository"
	authservice "github.com/driftmail/newsletter-backend/internal/auth/service"
	"github.com/driftmail/newsletter-backend/internal/common/clock"
	"github.com/driftmail/newsletter-backend/internal/common/config"
	"github.com/driftmail/newsletter-backend/internal/common/constants"
	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	"github.com/driftmail/newsletter-backend/internal/common/db"
	commonhttp "github.com/driftmail/newsletter-backend/internal/common/http"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
	srv "github.com/driftmail/newsletter-backend/internal/common/server"
	"github.com/driftmail/newsletter-backend/internal/email"
	newshttp "github.com/driftmail/newsletter-backend/internal/newsletter/http"
	newsservice "github.com/driftmail/newsletter-backend/internal/newsletter/service"
	subhttp "github.com/driftmail/newsletter-backend/internal/subscriber/http"
	subrepo "github.com/driftmail/newsletter-backend/internal/subscriber/repository"
	subservice "github.com/driftmail/newsletter-backend/internal/subscriber/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "newsletter", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	hasher, err := commoncrypto.NewArgon2idHasher(commoncrypto.Argon2Params{
		Memory:      cfg.HashMemoryKB,
		Time:        cfg.HashTime,
		Parallelism: cfg.HashParallelism,
		SaltLength:  constants.DefaultHashSaltLength,
		KeyLength:   constants.DefaultHashKeyLength,
	})
	if err != nil {
		log.Fatalf("failed to initialize password hasher: %v", err)
	}

	verifyPool := authservice.NewVerifyPool(hasher, cfg.VerifyWorkers, cfg.VerifyQueueSize)

	credentialRepo := authrepo.NewPgRepository(pool)
	validator, err := authservice.NewCredentialValidator(credentialRepo, hasher, verifyPool, log)
	if err != nil {
		log.Fatalf("failed to initialize credential validator: %v", err)
	}

	idGenerator := commoncrypto.NewUUIDGenerator()
	tokenIssuer := authservice.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.AccessTokenTTL, clock.NewRealClock())

	mailClient := email.NewClient(
		cfg.EmailBaseURL,
		cfg.EmailSender,
		commoncrypto.NewSecret(cfg.EmailAuthToken),
		cfg.EmailSendTimeout,
	)

	subscriberRepo := subrepo.NewPgRepository(pool)
	subscriberService := subservice.NewService(subscriberRepo, mailClient, idGenerator, log, cfg.AppBaseURL)
	publisher := newsservice.NewPublisher(subscriberRepo, mailClient, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	authhttp.NewHandler(validator, tokenIssuer, log, cfg.RequestTimeout).Register(mux)
	subhttp.NewHandler(subscriberService, log, cfg.RequestTimeout).Register(mux)
	newshttp.NewHandler(validator, publisher, log).Register(mux)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("newsletter service: draining verification pool")
			verifyPool.Shutdown()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "newsletter", shutdownHooks)
}
