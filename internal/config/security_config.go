package config

type SecurityConfig interface {
	GetCookieSecret() []byte
	GetRateLimitPerMinute() int
	IsMetricsEnabled() bool
	GetMetricsToken() string
}

type Security struct {
	CookieSecret       string `env:"COOKIE_SECRET,required,notEmpty"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	MetricsEnabled     bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsToken       string `env:"METRICS_TOKEN"`
}

var _ SecurityConfig = Security{}

func (s Security) GetCookieSecret() []byte {
	return []byte(s.CookieSecret)
}

// GetRateLimitPerMinute is the per-client budget for /auth routes. Zero disables limiting.
func (s Security) GetRateLimitPerMinute() int {
	if s.RateLimitPerMinute < 0 {
		return 0
	}
	return s.RateLimitPerMinute
}

// IsMetricsEnabled reports whether /metrics is served on the main listener.
func (s Security) IsMetricsEnabled() bool {
	return s.MetricsEnabled
}

// GetMetricsToken is the bearer token scrapers must send. Empty leaves /metrics open,
// which is only suitable when the port is not reachable from outside.
func (s Security) GetMetricsToken() string {
	return s.MetricsToken
}
