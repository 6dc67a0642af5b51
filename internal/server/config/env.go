package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAddr           = "PICKGATE_ADDR"
	EnvStorage        = "PICKGATE_STORAGE"
	EnvDatabaseDSN    = "PICKGATE_DATABASE_DSN"
	EnvSecretKey      = "PICKGATE_SECRET_KEY"
	EnvTokenValidity  = "PICKGATE_TOKEN_VALIDITY"
	EnvPasswordScheme = "PICKGATE_PASSWORD_SCHEME"
	EnvLogBackend     = "PICKGATE_LOG_BACKEND"
	EnvCORSOrigins    = "PICKGATE_CORS_ORIGINS"
	EnvShutdown       = "PICKGATE_SHUTDOWN_TIMEOUT"
)

// dotenvFile is loaded into the process environment when it exists.
// Variables already set are not overridden.
var dotenvFile = ".env"

// parseEnv overlays PICKGATE_* variables onto config. Invalid durations panic.
func parseEnv(config *Config) {
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			panic(err)
		}
	}

	lookupString(EnvAddr, &config.EndpointAddrHTTP)
	lookupString(EnvStorage, &config.StorageDriver)
	lookupString(EnvDatabaseDSN, &config.DatabaseDSN)
	lookupString(EnvSecretKey, &config.SecretKey)
	lookupString(EnvPasswordScheme, &config.PasswordScheme)
	lookupString(EnvLogBackend, &config.LogBackend)
	lookupDuration(EnvTokenValidity, &config.TokenValidityDuration)
	lookupDuration(EnvShutdown, &config.ShutdownTimeout)

	if v, ok := os.LookupEnv(EnvCORSOrigins); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
