package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
	"github.com/driftmail/newsletter-backend/internal/email"
	"github.com/driftmail/newsletter-backend/internal/subscriber/domain"
	subhttp "github.com/driftmail/newsletter-backend/internal/subscriber/http"
	"github.com/driftmail/newsletter-backend/internal/subscriber/repository"
	"github.com/driftmail/newsletter-backend/internal/subscriber/service"
)

type stubRepo struct {
	insertErr  error
	confirmErr error
}

func (s *stubRepo) InsertPending(ctx context.Context, email domain.Email, name domain.Name, token string) (uuid.UUID, error) {
	if s.insertErr != nil {
		return uuid.Nil, s.insertErr
	}
	return uuid.New(), nil
}

func (s *stubRepo) ConfirmByToken(ctx context.Context, token string) error {
	return s.confirmErr
}

func (s *stubRepo) ListConfirmed(ctx context.Context) ([]domain.ConfirmedRecipient, error) {
	return nil, nil
}

type noopSender struct{}

func (noopSender) Send(ctx context.Context, msg email.Message) error { return nil }

func newTestMux(t *testing.T, repo *stubRepo) *http.ServeMux {
	t.Helper()

	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	svc := service.NewService(repo, noopSender{}, commoncrypto.NewUUIDGenerator(), log, "https://newsletter.example.com")

	mux := http.NewServeMux()
	subhttp.NewHandler(svc, log, 5*time.Second).Register(mux)
	return mux
}

func postForm(mux *http.ServeMux, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSubscribe_OK(t *testing.T) {
	mux := newTestMux(t, &stubRepo{})

	rec := postForm(mux, url.Values{"name": {"Ursula Le Guin"}, "email": {"ursula@example.com"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubscribe_InvalidInput(t *testing.T) {
	mux := newTestMux(t, &stubRepo{})

	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing name", url.Values{"email": {"ursula@example.com"}}},
		{"missing email", url.Values{"name": {"Ursula"}}},
		{"bad email", url.Values{"name": {"Ursula"}, "email": {"not-an-email"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postForm(mux, tt.values); rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestSubscribe_DuplicateEmail(t *testing.T) {
	mux := newTestMux(t, &stubRepo{insertErr: repository.ErrEmailAlreadySubscribed})

	rec := postForm(mux, url.Values{"name": {"Ursula"}, "email": {"ursula@example.com"}})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestConfirm_OK(t *testing.T) {
	mux := newTestMux(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/confirm?subscription_token=abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestConfirm_MissingToken(t *testing.T) {
	mux := newTestMux(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/confirm", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConfirm_UnknownToken(t *testing.T) {
	mux := newTestMux(t, &stubRepo{confirmErr: repository.ErrTokenNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/confirm?subscription_token=nope", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
