package config

import "time"

type OAuthConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRedirectURI() string
	GetProviderTimeout() time.Duration
	GetStateTTL() time.Duration
	GetSessionTTL() time.Duration
}

type OAuth struct {
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID,required,notEmpty"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET,required,notEmpty"`
	GoogleRedirectURI  string        `env:"GOOGLE_REDIRECT_URI,required,notEmpty"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	StateTTL           time.Duration `env:"STATE_TTL" envDefault:"5m"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"168h"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetGoogleClientID() string {
	return o.GoogleClientID
}

func (o OAuth) GetGoogleClientSecret() string {
	return o.GoogleClientSecret
}

func (o OAuth) GetGoogleRedirectURI() string {
	return o.GoogleRedirectURI
}

func (o OAuth) GetProviderTimeout() time.Duration {
	return o.ProviderTimeout
}

// GetStateTTL bounds how long a browser has to come back from Google.
func (o OAuth) GetStateTTL() time.Duration {
	return o.StateTTL
}

func (o OAuth) GetSessionTTL() time.Duration {
	return o.SessionTTL // 7 days by default
}
