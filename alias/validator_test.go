package alias

import (
	"errors"
	"strings"
	"testing"

	"github.com/tj/assert"
)

func TestValidateRoundTrip(t *testing.T) {
	p := testProvider(t)

	generated, err := Generate(p, "my-secret", []string{"service", "provider"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	recipient := Validate(p, map[string]string{"my-secret": "inbox@real.com"}, generated, DefaultHashLength)
	assert.Equal(t, "inbox@real.com", recipient)
}

func TestValidateCustomHashLength(t *testing.T) {
	p := testProvider(t)

	for _, hashLength := range []int{2, 6, 10, 32, 64} {
		generated, err := Generate(p, "my-secret", []string{"site"}, "example.com", hashLength)
		if err != nil {
			t.Fatal(err)
		}
		recipient := Validate(p, map[string]string{"my-secret": "inbox@real.com"}, generated, hashLength)
		assert.Equal(t, "inbox@real.com", recipient)
	}
}

func TestValidateTamperedHash(t *testing.T) {
	p := testProvider(t)

	generated, err := Generate(p, "my-secret", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	keys := map[string]string{"my-secret": "inbox@real.com"}

	// flip every hex character of the signature segment one at a time
	at := strings.LastIndex(generated, "@")
	start := at - DefaultHashLength
	for i := start; i < at; i++ {
		flipped := byte('0')
		if generated[i] == '0' {
			flipped = '1'
		}
		tampered := generated[:i] + string(flipped) + generated[i+1:]
		assert.Equal(t, "", Validate(p, keys, tampered, DefaultHashLength))
	}
}

func TestValidateWrongKey(t *testing.T) {
	p := testProvider(t)

	generated, err := Generate(p, "my-secret", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	recipient := Validate(p, map[string]string{"my-other-secret": "inbox@real.com"}, generated, DefaultHashLength)
	assert.Equal(t, "", recipient)
}

// an alias generated with one hash length must not validate with another
func TestValidateHashLengthMismatch(t *testing.T) {
	p := testProvider(t)

	generated, err := Generate(p, "my-secret", []string{"site"}, "example.com", 10)
	if err != nil {
		t.Fatal(err)
	}
	keys := map[string]string{"my-secret": "inbox@real.com"}
	assert.Equal(t, "", Validate(p, keys, generated, DefaultHashLength))
}

func TestValidateMalformedInput(t *testing.T) {
	p := testProvider(t)
	keys := map[string]string{"my-secret": "inbox@real.com"}

	malformed := []string{
		"",
		"plainstring",
		"a@b",
		"no-hash-here@example.com",
		"site-XYZNOPE1@example.com",      // wrong character class
		"site-74E423D7@example.com",      // uppercase hex rejected
		"site-74e423d7",                  // missing @domain
		"-74e423d7@example.com",          // empty prefix
		"site-74e423d7@",                 // empty domain
		"site-74e4@example.com",          // wrong segment length
		"@example.com",
		"@",
		strings.Repeat("-", 50),
	}
	for _, input := range malformed {
		assert.Equal(t, "", Validate(p, keys, input, DefaultHashLength))
	}

	// nil and empty key rings
	assert.Equal(t, "", Validate(p, nil, "site-74e423d7@example.com", DefaultHashLength))
	assert.Equal(t, "", Validate(p, map[string]string{}, "site-74e423d7@example.com", DefaultHashLength))

	// nonsensical hash lengths never panic
	assert.Equal(t, "", Validate(p, keys, "site-74e423d7@example.com", 0))
	assert.Equal(t, "", Validate(p, keys, "site-74e423d7@example.com", -3))
}

// a crafted alias whose segment length exceeds the digest and whose hint
// matches a ring key must be rejected, not crash the validation
func TestValidateHashLengthTooLong(t *testing.T) {
	p := testProvider(t)
	keys := map[string]string{"my-secret": "inbox@real.com"}

	// "6d" is the hint for 'm', the first byte of the ring key
	crafted := "site-6d" + strings.Repeat("a", 68) + "@example.com"
	assert.Equal(t, "", Validate(p, keys, crafted, 70))

	barely := "site-6d" + strings.Repeat("a", MaxHashLength-HintLength+1) + "@example.com"
	assert.Equal(t, "", Validate(p, keys, barely, MaxHashLength+1))
}

// keys sharing a first byte share a hint; the full HMAC comparison must
// still pick the right one
func TestValidateHintCollision(t *testing.T) {
	p := testProvider(t)

	keys := map[string]string{
		"test-key-one": "one@real.com",
		"test-key-two": "two@real.com",
	}
	aliasOne, err := Generate(p, "test-key-one", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	aliasTwo, err := Generate(p, "test-key-two", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "one@real.com", Validate(p, keys, aliasOne, DefaultHashLength))
	assert.Equal(t, "two@real.com", Validate(p, keys, aliasTwo, DefaultHashLength))
}

// the key in the ring whose hint matches but whose provider errors must
// not block a later matching candidate
type flakyProvider struct {
	inner   Provider
	failKey string
}

func (f *flakyProvider) SignHMACSHA256(key []byte, message []byte) ([]byte, error) {
	if string(key) == f.failKey {
		return nil, errors.New("hmac backend failure")
	}
	return f.inner.SignHMACSHA256(key, message)
}

func (f *flakyProvider) RandomBytes(b []byte) error {
	return f.inner.RandomBytes(b)
}

func TestValidateCandidateErrorSwallowed(t *testing.T) {
	p := testProvider(t)

	generated, err := Generate(p, "test-key-two", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	flaky := &flakyProvider{inner: p, failKey: "test-key-one"}
	keys := map[string]string{
		"test-key-one": "one@real.com",
		"test-key-two": "two@real.com",
	}
	assert.Equal(t, "two@real.com", Validate(flaky, keys, generated, DefaultHashLength))
}

func TestValidateMultiPartPrefix(t *testing.T) {
	p := testProvider(t)

	generated, err := Generate(p, "my-secret", []string{"shop", "amazon", "electronics"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	recipient := Validate(p, map[string]string{"my-secret": "inbox@real.com"}, generated, DefaultHashLength)
	assert.Equal(t, "inbox@real.com", recipient)
}
