package config

import "strings"

type Cors struct {
	FrontendOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// GetFrontendOrigin is where the browser lands after a successful login.
func (c Cors) GetFrontendOrigin() string {
	return strings.TrimRight(c.FrontendOrigin, "/")
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	return AllowedOrigins{c.GetFrontendOrigin(): nullValue{}}
}

func (Cors) GetAllowedMethods() string {
	return "GET, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
