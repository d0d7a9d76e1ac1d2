package alias

import (
	"encoding/hex"
	"testing"

	"github.com/tj/assert"
)

func TestDefaultProviderResolvesOnce(t *testing.T) {
	first, err := DefaultProvider()
	if err != nil {
		t.Fatal(err)
	}
	second, err := DefaultProvider()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, first, second)
}

// RFC 4231 test case 2: HMAC-SHA256("Jefe", "what do ya want for nothing?")
func TestSignHMACSHA256KnownAnswer(t *testing.T) {
	p, err := DefaultProvider()
	if err != nil {
		t.Fatal(err)
	}
	mac, err := p.SignHMACSHA256([]byte("Jefe"), []byte("what do ya want for nothing?"))
	if err != nil {
		t.Fatal(err)
	}
	expected := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	assert.Equal(t, expected, hex.EncodeToString(mac))
}

func TestRandomBytesFillsBuffer(t *testing.T) {
	p, err := DefaultProvider()
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 64)
	if rErr := p.RandomBytes(buf); rErr != nil {
		t.Fatal(rErr)
	}
	allZero := true
	for _, b := range buf {
		if b != 0 {
			allZero = false
			break
		}
	}
	assert.False(t, allZero)
}
