package errors

import (
	"errors"
	"fmt"
)

// Common error types for the login relay
var (
	// Callback errors
	ErrBadRequest    = errors.New("authorization code not provided")
	ErrStateMismatch = errors.New("invalid state parameter")

	// Provider errors
	ErrAccessDenied        = errors.New("authorization denied by provider")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrProfileFetchFailed  = errors.New("profile fetch failed")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("malformed token")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Kind tags an error with the outcome the HTTP boundary reports for it.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindStateMismatch
	KindAccessDenied
	KindTokenExchangeFailed
	KindProfileFetchFailed
	KindNotAuthenticated
	KindInvalidSignature
	KindExpired
	KindMalformed
)

var kindNames = map[Kind]string{
	KindInternal:            "internal",
	KindBadRequest:          "bad_request",
	KindStateMismatch:       "state_mismatch",
	KindAccessDenied:        "access_denied",
	KindTokenExchangeFailed: "token_exchange_failed",
	KindProfileFetchFailed:  "profile_fetch_failed",
	KindNotAuthenticated:    "not_authenticated",
	KindInvalidSignature:    "invalid_signature",
	KindExpired:             "expired",
	KindMalformed:           "malformed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindOf classifies err by the first sentinel found in its chain.
// Anything unrecognised is KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrBadRequest):
		return KindBadRequest
	case errors.Is(err, ErrStateMismatch):
		return KindStateMismatch
	case errors.Is(err, ErrAccessDenied):
		return KindAccessDenied
	case errors.Is(err, ErrTokenExchangeFailed):
		return KindTokenExchangeFailed
	case errors.Is(err, ErrProfileFetchFailed):
		return KindProfileFetchFailed
	case errors.Is(err, ErrNotAuthenticated):
		return KindNotAuthenticated
	case errors.Is(err, ErrInvalidSignature):
		return KindInvalidSignature
	case errors.Is(err, ErrExpired):
		return KindExpired
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	default:
		return KindInternal
	}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
