package server

import (
	"net/http"

	"github.com/jrsteele09/go-login-relay/auth"
	"github.com/jrsteele09/go-login-relay/internal/errors"
	"github.com/jrsteele09/go-login-relay/internal/metrics"
	"github.com/jrsteele09/go-login-relay/token"
	"github.com/rs/zerolog"
)

// profileResponse is the body of GET /auth/me
type profileResponse struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Provider string `json:"provider"`
}

func newProfileResponse(claims token.SessionClaims) profileResponse {
	return profileResponse{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
		Provider: claims.Provider,
	}
}

// GoogleLoginHandler starts a login: it binds a fresh state to the browser and
// sends it to Google.
func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, redirectURL := s.auth.Start()
		s.setSignedCookie(w, stateCookieName, state, s.config.GetStateTTL())
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// GoogleCallbackHandler completes a login and hands the browser back to the front-end.
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		req := auth.CallbackRequest{
			Code:          query.Get("code"),
			State:         query.Get("state"),
			ProviderError: query.Get("error"),
		}

		cookieState, err := s.readSignedCookie(r, stateCookieName)
		if err != nil && err != http.ErrNoCookie {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("State cookie failed verification")
		}
		req.CookieState = cookieState

		sessionToken, claims, err := s.auth.Callback(r.Context(), req)
		if err != nil {
			kind := errors.KindOf(err)
			s.metrics.RecordLogin(kind.String())
			// A request that never proved it owns the state must not consume it
			if kind != errors.KindBadRequest && kind != errors.KindStateMismatch {
				s.clearCookie(w, stateCookieName)
			}
			if req.ProviderError != "" {
				zerolog.Ctx(r.Context()).Warn().
					Str("error", req.ProviderError).
					Str("error_description", query.Get("error_description")).
					Msg("Provider returned an authorization error")
			}
			writeAuthError(w, r, err)
			return
		}

		s.clearCookie(w, stateCookieName)
		s.setSignedCookie(w, sessionCookieName, sessionToken, s.config.GetSessionTTL())
		s.metrics.RecordLogin(metrics.OutcomeSuccess)

		zerolog.Ctx(r.Context()).Info().Str("sub", claims.Subject).Msg("Login succeeded")
		http.Redirect(w, r, s.config.GetFrontendOrigin(), http.StatusFound)
	}
}

// MeHandler returns the profile held in the session. It runs behind RequireSession.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := SessionFromContext(r.Context())
		if !ok {
			writeAuthError(w, r, errors.ErrNotAuthenticated)
			return
		}
		writeJSON(w, http.StatusOK, newProfileResponse(claims))
	}
}

// LogoutHandler drops the session cookie. The token itself stays valid until it expires.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clearCookie(w, sessionCookieName)
		writeJSON(w, http.StatusOK, messageResponse{Message: msgLoggedOut})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// NotFoundHandler answers every unregistered path with a JSON error.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	}
}
