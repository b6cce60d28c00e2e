// Package keys derives purpose-bound signing keys from the single COOKIE_SECRET.
package keys

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Purposes for derived keys. Changing one invalidates every value signed with it.
const (
	PurposeCookie  = "login-relay/cookie-signing/v1"
	PurposeSession = "login-relay/session-token/v1"
)

const derivedKeyLength = 32

// Derive returns a 32 byte HKDF-SHA256 key for purpose.
func Derive(secret []byte, purpose string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("[keys Derive] secret is required")
	}
	key := make([]byte, derivedKeyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("[keys Derive] %s: %w", purpose, err)
	}
	return key, nil
}

// Set holds the keys the relay signs with.
type Set struct {
	Cookie  []byte
	Session []byte
}

// NewSet derives the cookie and session keys from secret.
func NewSet(secret []byte) (Set, error) {
	cookieKey, err := Derive(secret, PurposeCookie)
	if err != nil {
		return Set{}, err
	}
	sessionKey, err := Derive(secret, PurposeSession)
	if err != nil {
		return Set{}, err
	}
	return Set{Cookie: cookieKey, Session: sessionKey}, nil
}
