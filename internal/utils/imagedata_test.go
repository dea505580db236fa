package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validPNGLogo = "data:image/png;base64,iVBORw0KGgoAAAANSUhEQgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestIsValidBase64Image(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid png data URL", validPNGLogo, true},
		{"valid jpeg data URL", "data:image/jpeg;base64,SGVsbG8=", true},
		{"valid svg data URL", "data:image/svg+xml;base64,SGVsbG8=", true},
		{"uppercase mime type is tolerated", "DATA:IMAGE/PNG;BASE64,SGVsbG8=", true},
		{"empty string", "", false},
		{"not a data URL", "not-a-data-url", false},
		{"non-image mime type", "data:text/plain;base64,SGVsbG8gd29ybGQ=", false},
		{"invalid base64 payload", "data:image/png;base64,invalid-base64-data!!!", false},
		{"missing payload", "data:image/png;base64,", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidBase64Image(tt.input))
		})
	}
}
