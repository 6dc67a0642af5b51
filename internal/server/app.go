// Package server wires configuration, storage, the user service and the HTTP
// transport together and runs them until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pickgate/internal/common"
	"github.com/dmitrijs2005/pickgate/internal/logging"
	"github.com/dmitrijs2005/pickgate/internal/server/config"
	"github.com/dmitrijs2005/pickgate/internal/server/httpapi"
	"github.com/dmitrijs2005/pickgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pickgate/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

// NewApp opens storage (running migrations) and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, logOut)
	if err != nil {
		return nil, err
	}

	if c.PasswordScheme == config.PasswordSchemePlain {
		logger.Warn(ctx, "passwords are stored and compared in plaintext; use the bcrypt or argon2id scheme for new deployments")
	}

	if c.SecretKey == "" {
		secret, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, err
		}
		c.SecretKey = secret
		logger.Warn(ctx, "no secret key configured; tokens will not survive a restart")
	}

	db, rm, err := repomanager.Open(ctx, c.StorageDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us, err := services.NewUserService(db, rm, c)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService,
		app.config.SecretKey, app.config.CORSAllowedOrigins, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Run blocks until ctx is cancelled or a termination signal is received.
// A server that fails to start or serve is reported as an error.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	var httpErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		httpErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.closeDBIfNeeded(ctx)
	return httpErr
}

func (app *App) closeDBIfNeeded(ctx context.Context) {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
