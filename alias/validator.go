package alias

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"sync"
)

// Validation patterns per hash length. The default length is compiled
// up front; other lengths are compiled on first use.
var (
	patternMu sync.Mutex
	patterns  = map[int]*regexp.Regexp{DefaultHashLength: compilePattern(DefaultHashLength)}
)

// The domain group is deliberately tolerant: it may itself contain '@',
// so for input like "a-<hash>@b@c" the signature is the hex run before
// whichever '@' the pattern can anchor on (the rightmost viable one,
// since the prefix is greedy). The HMAC only covers the local-part
// prefix, so the lax domain match cannot admit a forged signature.
func compilePattern(hashLength int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^(.+)-([0-9a-f]{%d})@(.+)$`, hashLength))
}

func pattern(hashLength int) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := patterns[hashLength]
	if !ok {
		re = compilePattern(hashLength)
		patterns[hashLength] = re
	}
	return re
}

// Validate checks whether fullAlias was produced by one of the keys in
// keysRecipient and returns the recipient bound to the matching key, or
// "" when the alias is malformed, tampered with, or matches no key.
//
// The function is meant to be called on arbitrary attacker-controlled
// input (the recipient field of inbound mail): it never panics and never
// surfaces an error. A signature segment whose length differs from
// hashLength is treated exactly like tampering. Candidate keys are first
// filtered by the 2-character key hint so that the expected number of
// full HMAC computations stays O(1) for a well-distributed key set;
// per-candidate crypto failures count as non-matches so one bad key
// cannot block validation against the others.
//
// Comparison is plain string equality, not constant time. Forging an
// alias requires an HMAC-SHA256 pre-image, which is what the scheme
// relies on.
func Validate(p Provider, keysRecipient map[string]string, fullAlias string, hashLength int) string {
	if fullAlias == "" || hashLength < HintLength || hashLength > MaxHashLength || p == nil {
		return ""
	}

	m := pattern(hashLength).FindStringSubmatch(fullAlias)
	if m == nil {
		return ""
	}
	localPartPrefix := m[1]
	hashSegment := m[2]

	hint := hashSegment[:HintLength]
	providedTruncatedHash := hashSegment[HintLength:]

	for key, recipient := range keysRecipient {
		if key == "" || hex.EncodeToString([]byte{key[0]}) != hint {
			continue
		}
		signature, err := p.SignHMACSHA256([]byte(key), []byte(localPartPrefix))
		if err != nil {
			// a broken candidate key must not block the others
			continue
		}
		fullHash := hex.EncodeToString(signature)
		if fullHash[:hashLength-HintLength] == providedTruncatedHash {
			return recipient
		}
	}
	return ""
}
