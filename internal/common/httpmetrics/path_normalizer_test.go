package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/api/newsletters", "/api/newsletters"},
		{"/api/subscriptions/confirm", "/api/subscriptions/confirm"},
		{"/api/subscriptions/550e8400-e29b-41d4-a716-446655440000", "/api/subscriptions/{param}"},
		{"/api/subscriptions/12345", "/api/subscriptions/{param}"},
		{"/health", "/health"},
	}

	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
