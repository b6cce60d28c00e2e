package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-login-relay/internal/errors"
	"github.com/jrsteele09/go-login-relay/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the verified session claims
const ContextKeyClaims ContextKey = "claims"

// RequireSession is middleware for routes that need a signed-in browser.
// It verifies the session cookie and the token inside it, and puts the claims
// in the request context.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")

			raw, err := s.readSignedCookie(r, sessionCookieName)
			if err == http.ErrNoCookie {
				writeAuthError(w, r, errors.ErrNotAuthenticated)
				return
			}
			if err != nil {
				writeAuthError(w, r, errors.Wrapf(err, "[server RequireSession] session cookie"))
				return
			}

			claims, err := s.auth.Session(raw)
			if err != nil {
				writeAuthError(w, r, err)
				return
			}

			next(w, r.WithContext(context.WithValue(r.Context(), ContextKeyClaims, claims)))
		}
	}
}

// SessionFromContext returns the claims stored by RequireSession.
func SessionFromContext(ctx context.Context) (token.SessionClaims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(token.SessionClaims)
	return claims, ok
}
