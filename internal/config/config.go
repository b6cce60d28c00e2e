package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// minCookieSecretLength is the shortest COOKIE_SECRET accepted, in bytes.
const minCookieSecretLength = 32

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	IsProduction() bool
}

type CorsConfig interface {
	GetFrontendOrigin() string
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
	Security
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var c mainConfig
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, fmt.Errorf("[config Load] parse env: %w", err)
	}
	if len(c.CookieSecret) < minCookieSecretLength {
		return nil, fmt.Errorf("[config Load] COOKIE_SECRET must be at least %d bytes", minCookieSecretLength)
	}
	if c.StateTTL <= 0 {
		return nil, fmt.Errorf("[config Load] STATE_TTL must be positive, got %s", c.StateTTL)
	}
	if c.SessionTTL <= 0 {
		return nil, fmt.Errorf("[config Load] SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return c, nil
}
