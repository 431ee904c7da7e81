package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/middleware"
)

func TestWithTrustedSubnet(t *testing.T) {
	tests := []struct {
		name           string
		subnet         string
		realIP         string
		expectedStatus int
	}{
		{
			name:           "Allowed subnet",
			subnet:         "192.168.0.0/24",
			realIP:         "192.168.0.45",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Forbidden subnet",
			subnet:         "10.0.0.0/8",
			realIP:         "192.168.0.1",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Single host",
			subnet:         "203.0.113.5/32",
			realIP:         "203.0.113.5",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Prefix is not a subnet",
			subnet:         "192.168.1.0/24",
			realIP:         "192.168.10.1",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Missing header",
			subnet:         "192.168.1.0/24",
			realIP:         "",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Garbage header",
			subnet:         "192.168.1.0/24",
			realIP:         "not-an-ip",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "No trusted subnet configured",
			subnet:         "",
			realIP:         "127.0.0.1",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Invalid CIDR",
			subnet:         "192.168.0",
			realIP:         "192.168.0.1",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			wrapped := middleware.WithTrustedSubnet(tt.subnet, zap.NewNop())(handler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			rr := httptest.NewRecorder()
			wrapped.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if called != (tt.expectedStatus == http.StatusOK) {
				t.Errorf("next handler called = %v", called)
			}
		})
	}
}
