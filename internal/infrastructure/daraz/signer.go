package daraz

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Signer computes the marketplace request signature. It owns the app secret
// and never returns it; callers only ever see signatures, so the secret cannot
// leak into logs or error messages through this type.
type Signer struct {
	secret string
}

// NewSigner creates a Signer holding the given app secret
func NewSigner(secret string) *Signer {
	return &Signer{secret: secret}
}

// Sign computes the signature for a request to path with the given parameter
// set. The scheme must match the marketplace byte-for-byte:
//  1. sort parameter keys in ascending byte order
//  2. concatenate each key immediately followed by its value, no separator
//  3. prepend the literal request path
//  4. HMAC-SHA256 with the app secret, hex-encoded, uppercase
func (s *Signer) Sign(path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(path)
	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString(params[k])
	}

	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(builder.String()))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
