package http

import (
	"net/http"

	"github.com/driftmail/newsletter-backend/internal/common/constants"
	"github.com/driftmail/newsletter-backend/internal/common/httpmetrics"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
)

// BuildBaseHandler wraps the application handler with the shared middleware
// chain: security headers, panic recovery, trace ids, body size limits and
// request metrics, outermost first.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(collector.Wrap(handler)))))
}
