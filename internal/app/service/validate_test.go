package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com/page", false},
		{"http with port and query", "http://example.com:8080/a?b=c", false},
		{"trailing slash kept", "https://example.com/", false},
		{"empty", "", true},
		{"relative", "/just/a/path", true},
		{"no scheme", "example.com", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"missing host", "https:///path", true},
		{"port without host", "http://:80", true},
		{"port without host and path", "http://:80/path", true},
		{"mailto", "mailto:user@example.com", true},
		{"bad escape", "https://example.com/%zz", true},
		{"too long", "https://example.com/" + strings.Repeat("a", MaxURLLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
