package config

import (
	"strings"
)

const productionEnv = "PROD"

type EnvVars struct {
	Port     string `env:"PORT" envDefault:"4000"`
	AppName  string `env:"APP_NAME" envDefault:"Login Relay"`
	Env      string `env:"ENV" envDefault:"DEV"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	if strings.HasPrefix(e.Port, ":") {
		return e.Port
	}
	return ":" + e.Port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(e.LogLevel)
}

// IsProduction reports whether cookies should be restricted to HTTPS.
func (e EnvVars) IsProduction() bool {
	return e.GetEnv() == productionEnv
}
