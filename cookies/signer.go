// Package cookies signs and verifies cookie values with HMAC-SHA256.
//
// A signed value has the form "<value>.<base64url(hmac(value))>". The value
// itself may contain dots; the signature never does.
package cookies

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/jrsteele09/go-login-relay/internal/errors"
)

const separator = "."

var encoding = base64.RawURLEncoding.Strict()

// Signer signs and verifies cookie values with a fixed key.
type Signer struct {
	key []byte
}

// NewSigner creates a signer for key. The key is copied.
func NewSigner(key []byte) *Signer {
	return &Signer{key: append([]byte(nil), key...)}
}

// Sign returns value with its signature appended.
func (s *Signer) Sign(value string) string {
	return value + separator + encoding.EncodeToString(s.mac(value))
}

// Verify checks a signed value and returns the original value.
// It fails with ErrMalformed when there is no signature and ErrInvalidSignature
// when the signature does not match.
func (s *Signer) Verify(signed string) (string, error) {
	i := strings.LastIndex(signed, separator)
	if i < 0 {
		return "", errors.ErrMalformed
	}
	value, encodedSig := signed[:i], signed[i+1:]

	sig, err := encoding.DecodeString(encodedSig)
	if err != nil {
		return "", errors.ErrInvalidSignature
	}
	if !hmac.Equal(sig, s.mac(value)) {
		return "", errors.ErrInvalidSignature
	}
	return value, nil
}

func (s *Signer) mac(value string) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(value))
	return h.Sum(nil)
}
