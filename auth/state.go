package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

// stateLength is the number of random bytes in an OAuth state value (128 bits).
const stateLength = 16

// GenerateState returns a fresh OAuth state value: 32 hex characters.
func GenerateState() string {
	b := make([]byte, stateLength)
	// crypto/rand.Read never returns an error; it crashes if the OS source fails.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// statesMatch reports whether the state echoed by the provider equals the one
// issued to the browser. An empty issued state never matches.
func statesMatch(issued, echoed string) bool {
	if issued == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(issued), []byte(echoed)) == 1
}
