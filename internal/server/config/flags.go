package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/pickgate/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes (0 disables expiry)
//	-k string   storage driver (postgres, sqlite, memory)
//	-p string   password scheme (plain, bcrypt, argon2id)
//	-l string   log backend (slog, zap)
//	-o string   comma-separated CORS origins
//
// os.Args is first filtered with flagx.FilterArgs so flags meant for other
// loaders (-c) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-p", "-l", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.StorageDriver, "k", config.StorageDriver, "storage driver")
	fs.StringVar(&config.PasswordScheme, "p", config.PasswordScheme, "password scheme")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "CORS allowed origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "o":
			config.CORSAllowedOrigins = splitList(*origins)
		}
	})
}
