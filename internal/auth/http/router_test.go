package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/driftmail/newsletter-backend/internal/auth/domain"
	authhttp "github.com/driftmail/newsletter-backend/internal/auth/http"
	"github.com/driftmail/newsletter-backend/internal/auth/service"
	"github.com/driftmail/newsletter-backend/internal/common/clock"
	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
)

type stubRepository struct {
	stored domain.StoredCredentials
	found  bool
	err    error
}

func (s *stubRepository) FindByUsername(ctx context.Context, username string) (domain.StoredCredentials, bool, error) {
	return s.stored, s.found, s.err
}

func newTestHandler(t *testing.T, repo *stubRepository) http.Handler {
	t.Helper()

	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	hasher, err := commoncrypto.NewArgon2idHasher(commoncrypto.Argon2Params{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	if err != nil {
		t.Fatalf("failed to build hasher: %v", err)
	}

	pool := service.NewVerifyPool(hasher, 2, 8)
	t.Cleanup(pool.Shutdown)

	validator, err := service.NewCredentialValidator(repo, hasher, pool, log)
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	issuer := service.NewTokenIssuer(
		"test-secret-key-must-be-at-least-32-bytes-long",
		commoncrypto.NewUUIDGenerator(),
		15*time.Minute,
		clock.NewRealClock(),
	)

	mux := http.NewServeMux()
	authhttp.NewHandler(validator, issuer, log, 5*time.Second).Register(mux)
	return mux
}

func storedUser(t *testing.T, password string) *stubRepository {
	t.Helper()

	hasher, err := commoncrypto.NewArgon2idHasher(commoncrypto.Argon2Params{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	if err != nil {
		t.Fatalf("failed to build hasher: %v", err)
	}

	hash, err := hasher.Hash(commoncrypto.NewSecret(password))
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	return &stubRepository{
		stored: domain.StoredCredentials{
			UserID:       uuid.New(),
			PasswordHash: hash,
		},
		found: true,
	}
}

func TestLogin_Success(t *testing.T) {
	handler := newTestHandler(t, storedUser(t, "hunter2"))

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"hunter2"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	handler := newTestHandler(t, storedUser(t, "hunter2"))

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	handler := newTestHandler(t, &stubRepository{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"nobody","password":"hunter2"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t, &stubRepository{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, &stubRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
