package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/driftmail/newsletter-backend/internal/observability/metrics"
)

func tableForOperation(operation string) string {
	operation = strings.ToLower(operation)
	if strings.Contains(operation, "credential") || strings.Contains(operation, "user") {
		return "users"
	}
	if strings.Contains(operation, "token") {
		return "subscription_tokens"
	}
	if strings.Contains(operation, "subscri") {
		return "subscriptions"
	}
	return "unknown"
}

// HandleQueryError observes duration, maps pgx.ErrNoRows to the caller's
// not-found error and wraps everything else with the operation name.
func HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	table := tableForOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func HandleExecError(err error, operation string, startTime time.Time) error {
	table := tableForOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}
