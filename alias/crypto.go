// Package alias implements deterministic generation and validation of
// disposable email aliases bound to a secret key with a truncated
// HMAC-SHA256 signature, plus a cryptographically secure random string
// generator for producing new secret keys.
package alias

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"sync"
)

var (
	// ErrInvalidInput is returned when a caller violates a precondition
	// (empty alias parts, empty secret key, non-positive length, ...)
	ErrInvalidInput = errors.New("invalid input")

	// ErrCryptoUnavailable is returned when no usable cryptographic
	// capability is found in the host environment
	ErrCryptoUnavailable = errors.New("crypto capability unavailable")
)

// Provider supplies the keyed-HMAC-SHA256 primitive and a secure random
// byte source. The alias functions depend on this capability but do not
// implement it themselves, so tests and alternative runtimes can inject
// their own.
type Provider interface {
	// SignHMACSHA256 computes HMAC-SHA256 over message with the given key
	SignHMACSHA256(key []byte, message []byte) ([]byte, error)
	// RandomBytes fills b with cryptographically secure random bytes
	RandomBytes(b []byte) error
}

type nativeProvider struct{}

func (nativeProvider) SignHMACSHA256(key []byte, message []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, key)
	if _, err := mac.Write(message); err != nil {
		return nil, err
	}
	return mac.Sum(nil), nil
}

func (nativeProvider) RandomBytes(b []byte) error {
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return err
	}
	return nil
}

var (
	defaultOnce     sync.Once
	defaultProvider Provider
	defaultErr      error
)

// DefaultProvider resolves the platform crypto capability. Resolution is
// lazy (first use, not package load) and happens exactly once; the probe
// reads a single byte from the platform entropy source to confirm it is
// usable and fails with ErrCryptoUnavailable otherwise.
func DefaultProvider() (Provider, error) {
	defaultOnce.Do(func() {
		p := nativeProvider{}
		var probe [1]byte
		if err := p.RandomBytes(probe[:]); err != nil {
			defaultErr = errors.Join(ErrCryptoUnavailable, err)
			return
		}
		defaultProvider = p
	})
	return defaultProvider, defaultErr
}
