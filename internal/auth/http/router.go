package http

import (
	"context"
	"net/http"
	"time"

	"github.com/driftmail/newsletter-backend/internal/auth/domain"
	"github.com/driftmail/newsletter-backend/internal/auth/service"
	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	commonhttp "github.com/driftmail/newsletter-backend/internal/common/http"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	validator      *service.CredentialValidator
	issuer         *service.TokenIssuer
	errorHandler   *commonhttp.ErrorHandler
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(
	validator *service.CredentialValidator,
	issuer *service.TokenIssuer,
	log *logger.Logger,
	requestTimeout time.Duration,
) *Handler {
	return &Handler{
		validator:      validator,
		issuer:         issuer,
		errorHandler:   commonhttp.NewErrorHandler(log),
		log:            log,
		requestTimeout: requestTimeout,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", h.login)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login"}).
			Warnf("invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	userID, err := h.validator.Validate(ctx, domain.Credentials{
		Username: req.Username,
		Password: commoncrypto.NewSecret(req.Password),
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	token, _, err := h.issuer.IssueAccessToken(userID, req.Username)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
