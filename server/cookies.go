package server

import (
	"net/http"
	"time"
)

const (
	// stateCookieName binds an in-flight login to the browser that started it
	stateCookieName = "oauth_state"
	// sessionCookieName carries the signed session token after a successful login
	sessionCookieName = "session_token"
)

// setSignedCookie stores value signed with the cookie key.
func (s *Server) setSignedCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    s.cookies.Sign(value),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func (s *Server) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// readSignedCookie returns the verified value of the named cookie.
// An absent or empty cookie is http.ErrNoCookie; a bad signature is the signer's error.
func (s *Server) readSignedCookie(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", err
	}
	if c.Value == "" {
		return "", http.ErrNoCookie
	}
	return s.cookies.Verify(c.Value)
}
