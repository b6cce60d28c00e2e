// Package provider talks to Google's OAuth2 and OpenID Connect endpoints.
package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-login-relay/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Name is recorded as the provider of every session minted from a Google login.
const Name = "google"

const (
	DefaultIssuerURL   = "https://accounts.google.com"
	DefaultAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	DefaultTokenURL    = "https://oauth2.googleapis.com/token"
	DefaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	DefaultTimeout     = 10 * time.Second
)

// Calls reported to an Observer.
const (
	CallTokenExchange = "token_exchange"
	CallUserInfo      = "userinfo"
)

// Config holds the client credentials. Endpoint URLs default to Google's and
// can be overridden for tests.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	IssuerURL   string
	AuthURL     string
	TokenURL    string
	UserInfoURL string
	Timeout     time.Duration
}

// Identity is the profile returned by the userinfo endpoint.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Observer is notified after every outbound call to the provider.
type Observer interface {
	ObserveProviderCall(call string, elapsed time.Duration, err error)
}

type GoogleClient struct {
	oauth2     *oauth2.Config
	oidc       *oidc.Provider
	httpClient *http.Client
	observer   Observer
}

type Option func(*GoogleClient)

// WithHTTPClient replaces the client used for outbound calls.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GoogleClient) {
		g.httpClient = c
	}
}

func WithObserver(o Observer) Option {
	return func(g *GoogleClient) {
		g.observer = o
	}
}

// NewGoogleClient builds a client. No network call is made.
func NewGoogleClient(cfg Config, opts ...Option) *GoogleClient {
	if cfg.IssuerURL == "" {
		cfg.IssuerURL = DefaultIssuerURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = DefaultUserInfoURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	g := &GoogleClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(g)
	}

	providerConfig := &oidc.ProviderConfig{
		IssuerURL:   cfg.IssuerURL,
		AuthURL:     cfg.AuthURL,
		TokenURL:    cfg.TokenURL,
		UserInfoURL: cfg.UserInfoURL,
	}
	g.oidc = providerConfig.NewProvider(g.clientContext(context.Background()))

	endpoint := g.oidc.Endpoint()
	// Credentials go in the form body. Auto-detection would retry a rejected
	// exchange with the other style.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	g.oauth2 = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     endpoint,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}
	return g
}

// AuthorizationURL is where the browser is sent to sign in.
func (g *GoogleClient) AuthorizationURL(state string) string {
	return g.oauth2.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access token.
func (g *GoogleClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	start := time.Now()
	tok, err := g.oauth2.Exchange(g.clientContext(ctx), code)
	if err == nil && tok.AccessToken == "" {
		err = errors.ErrTokenExchangeFailed
	}
	g.observe(CallTokenExchange, start, err)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			log.Warn().
				Int("status", retrieveErr.Response.StatusCode).
				Str("error_code", retrieveErr.ErrorCode).
				Bytes("body", retrieveErr.Body).
				Msg("Google token endpoint rejected the code")
		}
		if errors.Is(err, errors.ErrTokenExchangeFailed) {
			return "", err
		}
		return "", errors.Wrapf(errors.ErrTokenExchangeFailed, "[provider ExchangeCode] %v", err)
	}
	return tok.AccessToken, nil
}

// FetchProfile reads the signed-in user's profile with accessToken.
func (g *GoogleClient) FetchProfile(ctx context.Context, accessToken string) (Identity, error) {
	start := time.Now()
	identity, err := g.fetchProfile(ctx, accessToken)
	g.observe(CallUserInfo, start, err)
	return identity, err
}

func (g *GoogleClient) fetchProfile(ctx context.Context, accessToken string) (Identity, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	info, err := g.oidc.UserInfo(g.clientContext(ctx), src)
	if err != nil {
		log.Warn().Err(err).Msg("Google userinfo request failed")
		return Identity{}, errors.Wrapf(errors.ErrProfileFetchFailed, "[provider FetchProfile] userinfo")
	}

	var profile struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := info.Claims(&profile); err != nil {
		return Identity{}, errors.Wrapf(errors.ErrProfileFetchFailed, "[provider FetchProfile] claims: %v", err)
	}

	if info.Subject == "" || info.Email == "" {
		return Identity{}, errors.Wrapf(errors.ErrProfileFetchFailed, "[provider FetchProfile] sub and email are required")
	}

	return Identity{
		Subject: info.Subject,
		Email:   info.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	}, nil
}

func (g *GoogleClient) clientContext(ctx context.Context) context.Context {
	return oidc.ClientContext(ctx, g.httpClient)
}

func (g *GoogleClient) observe(call string, start time.Time, err error) {
	if g.observer != nil {
		g.observer.ObserveProviderCall(call, time.Since(start), err)
	}
}
