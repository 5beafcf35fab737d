package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CredentialValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credential_validations_total",
			Help: "Total number of credential validation attempts",
		},
		[]string{"result"},
	)

	PasswordVerificationDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "password_verification_duration_seconds",
			Help:    "Duration of Argon2id password verifications",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	VerifierQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "password_verifier_queue_depth",
			Help: "Number of verification jobs waiting for a worker",
		},
	)

	VerifierSaturatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "password_verifier_saturated_total",
			Help: "Total number of verification submissions rejected because the queue was full",
		},
	)

	AccessTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "access_tokens_issued_total",
			Help: "Total number of operator access tokens issued",
		},
	)
)
