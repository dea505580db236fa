package utils

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// dataURLPattern matches the image data-URL prefix the invoice form produces
// when a logo is uploaded: data:image/<type>;base64,
var dataURLPattern = regexp.MustCompile(`(?i)^data:image/(png|jpg|jpeg|gif|webp|svg\+xml);base64,`)

// IsValidBase64Image reports whether s is a syntactically valid base64 image
// data URL. Only the encoding is checked; the decoded bytes are not inspected
// for an actual image header.
func IsValidBase64Image(s string) bool {
	if s == "" {
		return false
	}
	if !dataURLPattern.MatchString(s) {
		return false
	}

	_, payload, found := strings.Cut(s, ",")
	if !found || payload == "" {
		return false
	}

	_, err := base64.StdEncoding.DecodeString(payload)
	return err == nil
}
