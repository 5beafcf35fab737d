package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/driftmail/newsletter-backend/internal/auth/service"
	"github.com/driftmail/newsletter-backend/internal/common/clock"
)

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	return m.newIDFunc()
}

func TestTokenIssuer_IssueAccessToken_Success(t *testing.T) {
	jti := "jti-123"
	idGen := &mockIDGenerator{
		newIDFunc: func() (string, error) {
			return jti, nil
		},
	}
	mockClock := clock.NewMockClock(time.Now().UTC())

	issuer := service.NewTokenIssuer(
		"test-secret-key-must-be-at-least-32-bytes-long",
		idGen,
		15*time.Minute,
		mockClock,
	)

	token, tokenJTI, err := issuer.IssueAccessToken(uuid.New(), "admin")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if token == "" {
		t.Error("expected token to be set")
	}

	if tokenJTI != jti {
		t.Errorf("expected jti %s, got %s", jti, tokenJTI)
	}
}

func TestTokenIssuer_IssueAccessToken_IDGenerationError(t *testing.T) {
	idGen := &mockIDGenerator{
		newIDFunc: func() (string, error) {
			return "", errors.New("id generation failed")
		},
	}
	mockClock := clock.NewMockClock(time.Now().UTC())

	issuer := service.NewTokenIssuer(
		"test-secret-key-must-be-at-least-32-bytes-long",
		idGen,
		15*time.Minute,
		mockClock,
	)

	_, _, err := issuer.IssueAccessToken(uuid.New(), "admin")

	if err == nil {
		t.Fatal("expected error")
	}
}

func TestTokenIssuer_ParseToken_RoundTrip(t *testing.T) {
	idGen := &mockIDGenerator{
		newIDFunc: func() (string, error) {
			return "jti-123", nil
		},
	}
	mockClock := clock.NewMockClock(time.Now().UTC())

	issuer := service.NewTokenIssuer(
		"test-secret-key-must-be-at-least-32-bytes-long",
		idGen,
		15*time.Minute,
		mockClock,
	)

	userID := uuid.New()
	token, _, err := issuer.IssueAccessToken(userID, "admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := issuer.ParseToken(token)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if claims["sub"] != userID.String() {
		t.Errorf("expected sub %s, got %v", userID, claims["sub"])
	}

	if claims["usr"] != "admin" {
		t.Errorf("expected usr admin, got %v", claims["usr"])
	}
}

func TestTokenIssuer_ParseToken_InvalidToken(t *testing.T) {
	issuer := service.NewTokenIssuer(
		"test-secret-key-must-be-at-least-32-bytes-long",
		&mockIDGenerator{},
		15*time.Minute,
		clock.NewMockClock(time.Now().UTC()),
	)

	_, err := issuer.ParseToken("invalid-token")

	if err == nil {
		t.Fatal("expected error")
	}
}

func TestTokenIssuer_ParseToken_WrongSecret(t *testing.T) {
	idGen := &mockIDGenerator{
		newIDFunc: func() (string, error) {
			return "jti-123", nil
		},
	}
	mockClock := clock.NewMockClock(time.Now().UTC())

	issuer1 := service.NewTokenIssuer(
		"test-secret-key-must-be-at-least-32-bytes-long",
		idGen,
		15*time.Minute,
		mockClock,
	)
	issuer2 := service.NewTokenIssuer(
		"different-secret-key-must-be-at-least-32-bytes",
		idGen,
		15*time.Minute,
		mockClock,
	)

	token, _, err := issuer1.IssueAccessToken(uuid.New(), "admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = issuer2.ParseToken(token)

	if err == nil {
		t.Fatal("expected error for wrong secret")
	}
}
