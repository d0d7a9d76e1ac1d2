package alias

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// DefaultHashLength is the total number of hex characters of the
	// signature segment embedded in an alias (key hint included)
	DefaultHashLength = 8

	// HintLength is the number of hex characters of the signature segment
	// reserved for the key hint
	HintLength = 2

	// MaxHashLength is the longest signature segment an alias can carry:
	// the full 64-character hex HMAC-SHA256 digest plus the key hint
	MaxHashLength = HintLength + sha256.Size*2

	partSeparator = "-"
)

// Generate builds a deterministic alias of the form
//
//	<part1>-...-<partN>-<hint:2 hex><hash:(hashLength-2) hex>@<domain>
//
// where the hash is the truncated lowercase-hex HMAC-SHA256 of the joined
// parts keyed with secretKey, and the hint is the hex encoding of the first
// byte of the secret key. Identical inputs always produce the identical
// alias, independent of host platform.
//
// The same hashLength must be used when validating the alias; a mismatch
// is indistinguishable from tampering.
func Generate(p Provider, secretKey string, aliasParts []string, domain string, hashLength int) (string, error) {
	if secretKey == "" {
		return "", fmt.Errorf("%w: secret key cannot be empty", ErrInvalidInput)
	}
	if len(aliasParts) == 0 {
		return "", fmt.Errorf("%w: alias parts cannot be empty", ErrInvalidInput)
	}
	if hashLength < HintLength || hashLength > MaxHashLength {
		return "", fmt.Errorf("%w: hash length must be between %d and %d", ErrInvalidInput, HintLength, MaxHashLength)
	}

	localPartPrefix := strings.Join(aliasParts, partSeparator)

	signature, err := p.SignHMACSHA256([]byte(secretKey), []byte(localPartPrefix))
	if err != nil {
		return "", err
	}
	fullHash := hex.EncodeToString(signature)

	hint := keyHint(secretKey)
	truncated := fullHash[:hashLength-HintLength]

	return fmt.Sprintf("%s%s%s%s@%s", localPartPrefix, partSeparator, hint, truncated, domain), nil
}

// keyHint encodes the first byte of the UTF-8 encoding of the secret key
// as exactly 2 lowercase hex characters. The hint is a best-effort,
// non-unique disambiguator: keys sharing a first byte collide in hint
// space and are told apart only by the full HMAC comparison.
func keyHint(secretKey string) string {
	return hex.EncodeToString([]byte{secretKey[0]})
}
