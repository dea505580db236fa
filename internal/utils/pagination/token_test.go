package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	createdAt := time.Date(2025, 6, 6, 14, 30, 45, 123456789, time.UTC)
	invoiceID := "7d7cf853-8f39-41e6-9f1e-2c3d7b1f0c11"

	token := EncodeCursor(createdAt, invoiceID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.Equal(t, createdAt, decodedAt)
	assert.Equal(t, invoiceID, decodedID)
}

func TestDecodeCursorError(t *testing.T) {
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64, but no separator
	_, _, err = DecodeCursor("aGVsbG8=")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Separator present but the timestamp does not parse
	_, _, err = DecodeCursor("bm90LWEtdGltZXxpZA==") // "not-a-time|id"
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}
