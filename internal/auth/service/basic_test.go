package service_test

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/driftmail/newsletter-backend/internal/auth/service"
	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
)

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestExtractBasicCredentials_Success(t *testing.T) {
	creds, err := service.ExtractBasicCredentials(basicHeader("admin", "hunter2"))

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if creds.Username != "admin" {
		t.Errorf("expected username admin, got %s", creds.Username)
	}

	if creds.Password.Expose() != "hunter2" {
		t.Errorf("expected password hunter2, got %s", creds.Password.Expose())
	}
}

func TestExtractBasicCredentials_SplitsAtFirstColon(t *testing.T) {
	creds, err := service.ExtractBasicCredentials(basicHeader("admin", "pa:ss:word"))

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if creds.Username != "admin" {
		t.Errorf("expected username admin, got %s", creds.Username)
	}

	if creds.Password.Expose() != "pa:ss:word" {
		t.Errorf("expected password to keep embedded colons, got %s", creds.Password.Expose())
	}
}

func TestExtractBasicCredentials_EmptyUsernameAndPassword(t *testing.T) {
	creds, err := service.ExtractBasicCredentials(basicHeader("", ""))

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if creds.Username != "" || creds.Password.Expose() != "" {
		t.Error("expected empty username and password to parse")
	}
}

func TestExtractBasicCredentials_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Bearer abc123"},
		{"lowercase scheme", "basic " + base64.StdEncoding.EncodeToString([]byte("a:b"))},
		{"no space after scheme", "Basic" + base64.StdEncoding.EncodeToString([]byte("a:b"))},
		{"invalid base64", "Basic not-base64!!!"},
		{"no colon separator", "Basic " + base64.StdEncoding.EncodeToString([]byte("adminonly"))},
		{"decoded not utf8", "Basic " + base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, ':', 'x'})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ExtractBasicCredentials(tt.header)

			if err == nil {
				t.Fatal("expected error")
			}

			if !errors.Is(err, commonerrors.ErrMalformedAuthHeader) {
				t.Errorf("expected malformed header error, got %v", err)
			}

			var domainErr commonerrors.DomainError
			if !errors.As(err, &domainErr) {
				t.Fatal("expected a domain error")
			}

			if domainErr.HTTPStatus() != 401 {
				t.Errorf("expected status 401, got %d", domainErr.HTTPStatus())
			}
		})
	}
}
