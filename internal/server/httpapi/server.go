// Package httpapi exposes the credential service over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pickgate/internal/logging"
	"github.com/dmitrijs2005/pickgate/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// UserService is the business logic the handlers depend on.
type UserService interface {
	Signup(ctx context.Context, email, password, name string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type HTTPServer struct {
	address         string
	users           UserService
	logger          logging.Logger
	jwtSecret       []byte
	corsOrigins     []string
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us UserService, secretKey string, corsOrigins []string, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		jwtSecret:       []byte(secretKey),
		corsOrigins:     corsOrigins,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler builds the router with all routes and middleware attached.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/ping", s.handlePing)
	r.Post("/signup", s.handleSignup)
	r.Post("/signin", s.handleSignin)

	r.Group(func(r chi.Router) {
		r.Use(s.Authenticate)
		r.Get("/me", s.handleMe)
	})

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
