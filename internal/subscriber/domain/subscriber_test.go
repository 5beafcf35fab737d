package domain_test

import (
	"strings"
	"testing"

	"github.com/driftmail/newsletter-backend/internal/subscriber/domain"
)

func TestParseEmail_Valid(t *testing.T) {
	email, err := domain.ParseEmail("ursula.le.guin@example.com")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if email.String() != "ursula.le.guin@example.com" {
		t.Errorf("unexpected email value %s", email.String())
	}
}

func TestParseEmail_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing at", "ursulaexample.com"},
		{"missing local part", "@example.com"},
		{"missing domain", "ursula@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := domain.ParseEmail(tt.raw); err == nil {
				t.Errorf("expected %q to be rejected", tt.raw)
			}
		})
	}
}

func TestParseName_Valid(t *testing.T) {
	tests := []string{
		"Ursula Le Guin",
		strings.Repeat("a", 256),
		"名前",
	}

	for _, raw := range tests {
		if _, err := domain.ParseName(raw); err != nil {
			t.Errorf("expected %q to be accepted, got %v", raw, err)
		}
	}
}

func TestParseName_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("a", 257)},
		{"forward slash", "a/b"},
		{"parenthesis", "a(b"},
		{"double quote", `a"b`},
		{"angle bracket", "a<b"},
		{"backslash", `a\b`},
		{"curly brace", "a{b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := domain.ParseName(tt.raw); err == nil {
				t.Errorf("expected %q to be rejected", tt.raw)
			}
		})
	}
}
