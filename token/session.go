package token

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-login-relay/internal/errors"
)

// SessionClaims is the identity carried by a session token.
type SessionClaims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	Provider  string    `json:"provider"`
	ExpiresAt time.Time `json:"-"`
}

// sessionJWT is the wire form of SessionClaims.
type sessionJWT struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

var signatureEncoding = base64.RawURLEncoding.Strict()

// Codec encodes and decodes session tokens with a fixed secret and lifetime.
type Codec struct {
	secret  []byte
	ttl     time.Duration
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec creates a codec. The secret is never modified after construction.
func NewCodec(secret []byte, ttl time.Duration, opts ...CodecOption) *Codec {
	c := &Codec{
		secret:  append([]byte(nil), secret...),
		ttl:     ttl,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL is the lifetime stamped on every encoded token.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

func (c *Codec) Encode(claims SessionClaims) (string, error) {
	return encodeAt(claims, c.secret, c.ttl, c.nowFunc())
}

func (c *Codec) Decode(raw string) (SessionClaims, error) {
	return decodeAt(raw, c.secret, c.nowFunc())
}

// Encode signs claims with secret and an expiry of now + ttl.
func Encode(claims SessionClaims, secret []byte, ttl time.Duration) (string, error) {
	return encodeAt(claims, secret, ttl, time.Now())
}

// Decode verifies raw against secret and returns its claims.
// It fails with ErrMalformed, ErrInvalidSignature or ErrExpired.
func Decode(raw string, secret []byte) (SessionClaims, error) {
	return decodeAt(raw, secret, time.Now())
}

func encodeAt(claims SessionClaims, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.Wrapf(errors.ErrInternal, "[token Encode] secret is required")
	}
	wire := sessionJWT{
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
		Provider: claims.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return NewHMACSigner(secret).Sign(wire)
}

func decodeAt(raw string, secret []byte, now time.Time) (SessionClaims, error) {
	if len(secret) == 0 {
		return SessionClaims{}, errors.Wrapf(errors.ErrInternal, "[token Decode] secret is required")
	}

	// The signature is checked over the raw bytes before anything is parsed, so
	// a modified header or payload is reported as a bad signature.
	i := strings.LastIndex(raw, ".")
	if i < 0 {
		return SessionClaims{}, errors.ErrMalformed
	}
	signer := NewHMACSigner(secret)
	sig, err := signatureEncoding.DecodeString(raw[i+1:])
	if err != nil {
		return SessionClaims{}, errors.ErrInvalidSignature
	}
	if err := signer.VerifySignature(raw[:i], sig); err != nil {
		return SessionClaims{}, errors.ErrInvalidSignature
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	var wire sessionJWT
	if _, err := parser.ParseWithClaims(raw, &wire, signer.GetVerificationKey); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, errors.ErrExpired
		}
		return SessionClaims{}, errors.Wrapf(errors.ErrMalformed, "[token Decode] %v", err)
	}

	return SessionClaims{
		Subject:   wire.Subject,
		Email:     wire.Email,
		Name:      wire.Name,
		Picture:   wire.Picture,
		Provider:  wire.Provider,
		ExpiresAt: wire.ExpiresAt.Time.UTC(),
	}, nil
}
