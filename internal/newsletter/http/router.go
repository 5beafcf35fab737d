package http

import (
	"errors"
	"net/http"

	authservice "github.com/driftmail/newsletter-backend/internal/auth/service"
	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
	commonhttp "github.com/driftmail/newsletter-backend/internal/common/http"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
	"github.com/driftmail/newsletter-backend/internal/newsletter/domain"
	"github.com/driftmail/newsletter-backend/internal/newsletter/service"
)

const challengeHeader = `Basic realm="publish"`

// Handler serves POST /api/newsletters. Responses are deliberately bare:
// authentication failures get a 401 with only the challenge header, and
// internal failures a plain 500, so nothing about stored credentials or
// subscriber state leaks to an unauthenticated caller.
type Handler struct {
	validator *authservice.CredentialValidator
	publisher *service.Publisher
	log       *logger.Logger
}

func NewHandler(validator *authservice.CredentialValidator, publisher *service.Publisher, log *logger.Logger) *Handler {
	return &Handler{
		validator: validator,
		publisher: publisher,
		log:       log,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/newsletters", h.publish)
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	creds, err := authservice.ExtractBasicCredentials(r.Header.Get("Authorization"))
	if err != nil {
		h.unauthorized(w)
		return
	}

	userID, err := h.validator.Validate(r.Context(), creds)
	if err != nil {
		if errors.Is(err, commonerrors.ErrInvalidCredentials) {
			h.unauthorized(w)
			return
		}
		h.log.WithFields(r.Context(), logger.Fields{"action": "publish"}).
			Errorf("credential validation failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var issue domain.Issue
	if err := commonhttp.DecodeJSON(r, &issue); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := issue.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.publisher.Publish(r.Context(), issue); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action":  "publish",
			"user_id": userID.String(),
		}).Errorf("newsletter publish failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", challengeHeader)
	w.WriteHeader(http.StatusUnauthorized)
}
