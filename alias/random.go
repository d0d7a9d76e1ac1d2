package alias

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateSecureRandomString returns a random string of exactly length
// characters drawn from the URL-safe alphabet [A-Za-z0-9_-]. It is used
// for producing new candidate secret keys and general-purpose tokens.
// Unlike Generate, the output is never reproducible.
func GenerateSecureRandomString(p Provider, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: length must be a positive integer", ErrInvalidInput)
	}

	// over-allocate so enough characters remain after base64 expansion
	// and padding strip
	bytesNeeded := (length*3+3)/4 + 2
	buf := make([]byte, bytesNeeded)
	if err := p.RandomBytes(buf); err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(buf)
	encoded = strings.ReplaceAll(encoded, "+", "-")
	encoded = strings.ReplaceAll(encoded, "/", "_")
	encoded = strings.ReplaceAll(encoded, "=", "")

	return encoded[:length], nil
}
