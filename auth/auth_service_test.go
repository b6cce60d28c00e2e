package auth_test

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/go-login-relay/auth"
	"github.com/jrsteele09/go-login-relay/internal/errors"
	"github.com/jrsteele09/go-login-relay/provider"
	"github.com/jrsteele09/go-login-relay/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testState       = "0123456789abcdef0123456789abcdef"
	testCode        = "4/0AQlEd8x-auth-code"
	testAccessToken = "ya29.access-token"
)

var testSecret = []byte("session-secret-session-secret-32")

// fakeProvider records calls and returns canned results
type fakeProvider struct {
	exchangeErr   error
	profileErr    error
	identity      provider.Identity
	exchangeCalls int
	profileCalls  int
	lastCode      string
	lastToken     string
}

func (f *fakeProvider) AuthorizationURL(state string) string {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) ExchangeCode(_ context.Context, code string) (string, error) {
	f.exchangeCalls++
	f.lastCode = code
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return testAccessToken, nil
}

func (f *fakeProvider) FetchProfile(_ context.Context, accessToken string) (provider.Identity, error) {
	f.profileCalls++
	f.lastToken = accessToken
	if f.profileErr != nil {
		return provider.Identity{}, f.profileErr
	}
	return f.identity, nil
}

type failingCodec struct{}

func (failingCodec) Encode(token.SessionClaims) (string, error) { return "", fmt.Errorf("boom") }
func (failingCodec) Decode(string) (token.SessionClaims, error) {
	return token.SessionClaims{}, errors.ErrMalformed
}

// testFixture holds all test dependencies
type testFixture struct {
	provider *fakeProvider
	codec    *token.Codec
	service  *auth.AuthorizationService
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	p := &fakeProvider{identity: provider.Identity{
		Subject: "108234567890",
		Email:   "jane.doe@example.com",
		Name:    "Jane Doe",
		Picture: "https://lh3.googleusercontent.com/a/photo.jpg",
	}}
	codec := token.NewCodec(testSecret, 7*24*time.Hour)

	service, err := auth.NewAuthorizationService(p, codec, auth.WithStateGenerator(func() string { return testState }))
	require.NoError(t, err)

	return &testFixture{provider: p, codec: codec, service: service}
}

func validCallback() auth.CallbackRequest {
	return auth.CallbackRequest{Code: testCode, State: testState, CookieState: testState}
}

func TestNewAuthorizationServiceRequiresDependencies(t *testing.T) {
	_, err := auth.NewAuthorizationService(nil, token.NewCodec(testSecret, time.Hour))
	require.Error(t, err)

	_, err = auth.NewAuthorizationService(&fakeProvider{}, nil)
	require.Error(t, err)
}

func TestGenerateState(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		s := auth.GenerateState()
		require.Len(t, s, 32)
		require.Regexp(t, "^[0-9a-f]{32}$", s)
		_, dup := seen[s]
		require.False(t, dup)
		seen[s] = struct{}{}
	}
}

func TestStart(t *testing.T) {
	f := setupTestFixture(t)

	state, redirectURL := f.service.Start()
	require.Equal(t, testState, state)
	require.Equal(t, "https://accounts.example.com/auth?state="+testState, redirectURL)
}

func TestStartUsesFreshStates(t *testing.T) {
	service, err := auth.NewAuthorizationService(&fakeProvider{}, token.NewCodec(testSecret, time.Hour))
	require.NoError(t, err)

	a, _ := service.Start()
	b, _ := service.Start()
	require.NotEqual(t, a, b)
}

func TestCallbackSuccess(t *testing.T) {
	f := setupTestFixture(t)

	raw, claims, err := f.service.Callback(context.Background(), validCallback())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.Equal(t, testCode, f.provider.lastCode)
	assert.Equal(t, testAccessToken, f.provider.lastToken)

	want := token.SessionClaims{
		Subject:  "108234567890",
		Email:    "jane.doe@example.com",
		Name:     "Jane Doe",
		Picture:  "https://lh3.googleusercontent.com/a/photo.jpg",
		Provider: "google",
	}
	assert.Equal(t, want, claims)

	decoded, err := f.service.Session(raw)
	require.NoError(t, err)
	decoded.ExpiresAt = time.Time{}
	assert.Equal(t, want, decoded)
}

func TestCallbackFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*auth.CallbackRequest, *fakeProvider)
		wantErr  error
		exchange int
	}{
		{
			name:    "missing code",
			mutate:  func(r *auth.CallbackRequest, _ *fakeProvider) { r.Code = "" },
			wantErr: errors.ErrBadRequest,
		},
		{
			name:    "missing code and state cookie reports missing code",
			mutate:  func(r *auth.CallbackRequest, _ *fakeProvider) {
				r.Code = ""
				r.CookieState = ""
			},
			wantErr: errors.ErrBadRequest,
		},
		{
			name:    "state cookie absent",
			mutate:  func(r *auth.CallbackRequest, _ *fakeProvider) { r.CookieState = "" },
			wantErr: errors.ErrStateMismatch,
		},
		{
			name:    "state differs",
			mutate:  func(r *auth.CallbackRequest, _ *fakeProvider) { r.State = "attacker-state" },
			wantErr: errors.ErrStateMismatch,
		},
		{
			name: "both states empty",
			mutate: func(r *auth.CallbackRequest, _ *fakeProvider) {
				r.State = ""
				r.CookieState = ""
			},
			wantErr: errors.ErrStateMismatch,
		},
		{
			name: "provider error without code",
			mutate: func(r *auth.CallbackRequest, _ *fakeProvider) {
				r.Code = ""
				r.ProviderError = "access_denied"
			},
			wantErr: errors.ErrBadRequest,
		},
		{
			name: "provider error with mismatched state",
			mutate: func(r *auth.CallbackRequest, _ *fakeProvider) {
				r.State = "attacker-state"
				r.ProviderError = "access_denied"
			},
			wantErr: errors.ErrStateMismatch,
		},
		{
			name:    "provider error after state matches",
			mutate:  func(r *auth.CallbackRequest, _ *fakeProvider) { r.ProviderError = "access_denied" },
			wantErr: errors.ErrAccessDenied,
		},
		{
			name:     "exchange fails",
			mutate:   func(_ *auth.CallbackRequest, p *fakeProvider) { p.exchangeErr = errors.ErrTokenExchangeFailed },
			wantErr:  errors.ErrTokenExchangeFailed,
			exchange: 1,
		},
		{
			name:     "exchange fails with untagged error",
			mutate:   func(_ *auth.CallbackRequest, p *fakeProvider) { p.exchangeErr = context.DeadlineExceeded },
			wantErr:  errors.ErrTokenExchangeFailed,
			exchange: 1,
		},
		{
			name:     "profile fails",
			mutate:   func(_ *auth.CallbackRequest, p *fakeProvider) { p.profileErr = fmt.Errorf("status 500") },
			wantErr:  errors.ErrProfileFetchFailed,
			exchange: 1,
		},
		{
			name:     "profile without email",
			mutate:   func(_ *auth.CallbackRequest, p *fakeProvider) { p.identity.Email = "" },
			wantErr:  errors.ErrProfileFetchFailed,
			exchange: 1,
		},
		{
			name:     "profile without subject",
			mutate:   func(_ *auth.CallbackRequest, p *fakeProvider) { p.identity.Subject = "" },
			wantErr:  errors.ErrProfileFetchFailed,
			exchange: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			req := validCallback()
			tt.mutate(&req, f.provider)

			raw, _, err := f.service.Callback(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, raw)
			require.Equal(t, tt.exchange, f.provider.exchangeCalls, "exchange is attempted at most once")
		})
	}
}

func TestCallbackEncodeFailureIsInternal(t *testing.T) {
	p := &fakeProvider{identity: provider.Identity{Subject: "1", Email: "a@example.com"}}
	service, err := auth.NewAuthorizationService(p, failingCodec{})
	require.NoError(t, err)

	_, _, err = service.Callback(context.Background(), auth.CallbackRequest{Code: testCode, State: "s", CookieState: "s"})
	require.Equal(t, errors.KindInternal, errors.KindOf(err))
}

func TestSession(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Session("")
	require.ErrorIs(t, err, errors.ErrNotAuthenticated)

	_, err = f.service.Session("garbage")
	require.ErrorIs(t, err, errors.ErrMalformed)

	other, err := token.Encode(token.SessionClaims{Subject: "1", Email: "a@example.com"}, []byte("another-secret-another-secret-32"), time.Hour)
	require.NoError(t, err)
	_, err = f.service.Session(other)
	require.ErrorIs(t, err, errors.ErrInvalidSignature)

	expired, err := token.Encode(token.SessionClaims{Subject: "1", Email: "a@example.com"}, testSecret, 0)
	require.NoError(t, err)
	_, err = f.service.Session(expired)
	require.ErrorIs(t, err, errors.ErrExpired)
}
