package errors_test

import (
	"fmt"
	"testing"

	"github.com/jrsteele09/go-login-relay/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.Kind
	}{
		{"nil", nil, errors.KindInternal},
		{"bad request", errors.ErrBadRequest, errors.KindBadRequest},
		{"wrapped state mismatch", fmt.Errorf("callback: %w", errors.ErrStateMismatch), errors.KindStateMismatch},
		{"wrapped exchange", errors.Wrapf(errors.ErrTokenExchangeFailed, "status %d", 400), errors.KindTokenExchangeFailed},
		{"access denied", errors.Wrapf(errors.ErrAccessDenied, "access_denied"), errors.KindAccessDenied},
		{"profile", errors.ErrProfileFetchFailed, errors.KindProfileFetchFailed},
		{"not authenticated", errors.ErrNotAuthenticated, errors.KindNotAuthenticated},
		{"signature", errors.ErrInvalidSignature, errors.KindInvalidSignature},
		{"expired", errors.ErrExpired, errors.KindExpired},
		{"malformed", errors.ErrMalformed, errors.KindMalformed},
		{"unknown", fmt.Errorf("boom"), errors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, errors.KindOf(tt.err))
		})
	}
}

func TestWrapf(t *testing.T) {
	require.Nil(t, errors.Wrapf(nil, "context"))

	err := errors.Wrapf(errors.ErrExpired, "decode %s", "session")
	require.EqualError(t, err, "decode session: token expired")
	require.True(t, errors.Is(err, errors.ErrExpired))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "state_mismatch", errors.KindStateMismatch.String())
	require.Equal(t, "kind(99)", errors.Kind(99).String())
}
