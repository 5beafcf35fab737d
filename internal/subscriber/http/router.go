package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/driftmail/newsletter-backend/internal/common/http"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
	"github.com/driftmail/newsletter-backend/internal/subscriber/service"
)

type Handler struct {
	svc            *service.Service
	errorHandler   *commonhttp.ErrorHandler
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(svc *service.Service, log *logger.Logger, requestTimeout time.Duration) *Handler {
	return &Handler{
		svc:            svc,
		errorHandler:   commonhttp.NewErrorHandler(log),
		log:            log,
		requestTimeout: requestTimeout,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/subscriptions", h.subscribe)
	mux.HandleFunc("/api/subscriptions/confirm", h.confirm)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "subscribe"}).
			Warnf("invalid form data: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidForm, "invalid form data", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	err := h.svc.Subscribe(ctx, service.SubscribeInput{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if err := h.svc.Confirm(ctx, r.URL.Query().Get("subscription_token")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
