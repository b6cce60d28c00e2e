package auth

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-login-relay/internal/errors"
	"github.com/jrsteele09/go-login-relay/provider"
	"github.com/jrsteele09/go-login-relay/token"
)

// IdentityProvider is the part of the OAuth client the login flow drives.
type IdentityProvider interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (provider.Identity, error)
}

// SessionCodec mints and reads session tokens.
type SessionCodec interface {
	Encode(claims token.SessionClaims) (string, error)
	Decode(raw string) (token.SessionClaims, error)
}

// CallbackRequest is what arrives at the callback endpoint.
type CallbackRequest struct {
	Code          string // "code" query parameter
	State         string // "state" query parameter
	ProviderError string // "error" query parameter, set when the user cancels at Google
	CookieState   string // verified value of the state cookie, empty if absent
}

// AuthorizationService runs the redirect, callback and session steps of a Google login.
// It holds no per-request state.
type AuthorizationService struct {
	provider IdentityProvider
	codec    SessionCodec
	newState func() string
}

// AuthorizationServiceOption defines a function type to modify the AuthorizationService instance.
type AuthorizationServiceOption func(*AuthorizationService)

// WithStateGenerator replaces GenerateState (primarily for testing)
func WithStateGenerator(gen func() string) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.newState = gen
	}
}

// NewAuthorizationService initializes a new AuthorizationService with required dependencies.
func NewAuthorizationService(p IdentityProvider, codec SessionCodec, opts ...AuthorizationServiceOption) (*AuthorizationService, error) {
	if p == nil {
		return nil, fmt.Errorf("[auth NewAuthorizationService] identity provider is required")
	}
	if codec == nil {
		return nil, fmt.Errorf("[auth NewAuthorizationService] session codec is required")
	}
	as := &AuthorizationService{
		provider: p,
		codec:    codec,
		newState: GenerateState,
	}
	for _, opt := range opts {
		opt(as)
	}
	return as, nil
}

// Start issues a new state and the provider URL the browser should be sent to.
func (as *AuthorizationService) Start() (state string, redirectURL string) {
	state = as.newState()
	return state, as.provider.AuthorizationURL(state)
}

// Callback completes a login. On success it returns the signed session token
// and the claims inside it. A missing code is rejected before anything else,
// then the state is checked.
func (as *AuthorizationService) Callback(ctx context.Context, req CallbackRequest) (string, token.SessionClaims, error) {
	if req.Code == "" {
		return "", token.SessionClaims{}, errors.ErrBadRequest
	}
	if !statesMatch(req.CookieState, req.State) {
		return "", token.SessionClaims{}, errors.ErrStateMismatch
	}
	// Only trusted once the state proves the redirect belongs to this browser
	if req.ProviderError != "" {
		return "", token.SessionClaims{}, errors.Wrapf(errors.ErrAccessDenied, "[auth Callback] provider returned %q", req.ProviderError)
	}

	accessToken, err := as.provider.ExchangeCode(ctx, req.Code)
	if err != nil {
		return "", token.SessionClaims{}, tag(errors.ErrTokenExchangeFailed, err)
	}

	identity, err := as.provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return "", token.SessionClaims{}, tag(errors.ErrProfileFetchFailed, err)
	}
	if identity.Subject == "" || identity.Email == "" {
		return "", token.SessionClaims{}, errors.Wrapf(errors.ErrProfileFetchFailed, "[auth Callback] profile is missing sub or email")
	}

	claims := token.SessionClaims{
		Subject:  identity.Subject,
		Email:    identity.Email,
		Name:     identity.Name,
		Picture:  identity.Picture,
		Provider: provider.Name,
	}
	raw, err := as.codec.Encode(claims)
	if err != nil {
		return "", token.SessionClaims{}, tag(errors.ErrInternal, err)
	}
	return raw, claims, nil
}

// Session returns the claims of a session token taken from the browser.
func (as *AuthorizationService) Session(raw string) (token.SessionClaims, error) {
	if raw == "" {
		return token.SessionClaims{}, errors.ErrNotAuthenticated
	}
	return as.codec.Decode(raw)
}

// tag makes sure err carries sentinel without losing its own chain.
func tag(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
