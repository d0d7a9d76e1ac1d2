package alias

import (
	"errors"
	"strings"
	"testing"

	"github.com/tj/assert"
)

func testProvider(t *testing.T) Provider {
	t.Helper()
	p, err := DefaultProvider()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// fixed vectors guarding cross-environment determinism of the scheme
func TestGenerateFixedVectors(t *testing.T) {
	p := testProvider(t)

	vectors := []struct {
		secretKey  string
		aliasParts []string
		domain     string
		hashLength int
		expected   string
	}{
		{"test-secret-key-123", []string{"service", "provider"}, "example.com", 8, "service-provider-74e423d7@example.com"},
		{"another-key-456", []string{"shop", "amazon", "electronics"}, "test.com", 12, "shop-amazon-electronics-615c8da60c8d@test.com"},
		{"short-hash-key", []string{"news", "tech"}, "newsletter.com", 6, "news-tech-73e26c@newsletter.com"},
	}

	for _, v := range vectors {
		generated, err := Generate(p, v.secretKey, v.aliasParts, v.domain, v.hashLength)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, v.expected, generated)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	p := testProvider(t)

	first, err := Generate(p, "my-secret", []string{"site", "shop"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(p, "my-secret", []string{"site", "shop"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, first, second)
}

func TestGeneratePartOrderMatters(t *testing.T) {
	p := testProvider(t)

	ab, _ := Generate(p, "my-secret", []string{"a", "b"}, "example.com", DefaultHashLength)
	ba, _ := Generate(p, "my-secret", []string{"b", "a"}, "example.com", DefaultHashLength)
	assert.NotEqual(t, ab, ba)
}

func TestGenerateKeyIsolation(t *testing.T) {
	p := testProvider(t)

	first, err := Generate(p, "key-one", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(p, "key-two", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEqual(t, first, second)
}

func TestGenerateKeyHint(t *testing.T) {
	p := testProvider(t)

	// 't' is 0x74, so the signature segment must start with "74"
	generated, err := Generate(p, "test-secret-key-123", []string{"site"}, "example.com", DefaultHashLength)
	if err != nil {
		t.Fatal(err)
	}
	localPart := strings.Split(generated, "@")[0]
	segment := localPart[strings.LastIndex(localPart, "-")+1:]
	assert.Equal(t, DefaultHashLength, len(segment))
	assert.Equal(t, "74", segment[:2])
}

func TestGenerateInvalidInput(t *testing.T) {
	p := testProvider(t)

	_, err := Generate(p, "my-secret", []string{}, "example.com", DefaultHashLength)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Generate(p, "", []string{"site"}, "example.com", DefaultHashLength)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Generate(p, "my-secret", []string{"site"}, "example.com", 1)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

// a signature segment can carry at most the full 64-character digest plus
// the hint; anything longer is rejected instead of slicing past the digest
func TestGenerateHashLengthBounds(t *testing.T) {
	p := testProvider(t)

	generated, err := Generate(p, "my-secret", []string{"site"}, "example.com", MaxHashLength)
	if err != nil {
		t.Fatal(err)
	}
	localPart := strings.Split(generated, "@")[0]
	segment := localPart[strings.LastIndex(localPart, "-")+1:]
	assert.Equal(t, MaxHashLength, len(segment))

	_, err = Generate(p, "my-secret", []string{"site"}, "example.com", MaxHashLength+1)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Generate(p, "my-secret", []string{"site"}, "example.com", 70)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
