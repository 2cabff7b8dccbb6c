// Package server wires the auth server together: it opens the credential
// store, builds the token codec and the user service, and runs the HTTP and
// gRPC transports until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophcourses/internal/logging"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/dmitrijs2005/gophcourses/internal/server/config"
	"github.com/dmitrijs2005/gophcourses/internal/server/httpapi"
	"github.com/dmitrijs2005/gophcourses/internal/server/metrics"
	"github.com/dmitrijs2005/gophcourses/internal/server/ratelimit"
	"github.com/dmitrijs2005/gophcourses/internal/server/shared/db"
	"github.com/dmitrijs2005/gophcourses/internal/server/users"
	"github.com/prometheus/client_golang/prometheus"

	gs "github.com/dmitrijs2005/gophcourses/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       db.RepositoryManager
	userService *users.Service
	authn       *auth.Authenticator
	metrics     *metrics.Collector
	registry    *prometheus.Registry
	limiter     *ratelimit.Limiter
}

// openStore is a seam for tests.
var openStore = db.Open

func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	logger := logging.New(c.LogLevel, logOut)

	codec, err := auth.NewTokenCodec([]byte(c.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	store, err := openStore(ctx, c.Storage, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	us := users.NewService(store.Users(), auth.NewBcryptHasher(), codec, logger, collector)

	return &App{
		config:      c,
		logger:      logger,
		store:       store,
		userService: us,
		authn:       auth.NewAuthenticator(codec),
		metrics:     collector,
		registry:    registry,
	}, nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.authn, app.metrics,
		gs.WithRateLimiter(app.limiter))

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

// Handler returns the HTTP API of the app.
func (app *App) Handler() http.Handler {
	return httpapi.NewRouter(httpapi.RouterDeps{
		Users:          app.userService,
		Authenticator:  app.authn,
		Logger:         app.logger,
		Metrics:        app.metrics,
		Limiter:        app.limiter,
		MetricsHandler: metrics.Handler(app.registry),
	})
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.Handler(), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both APIs until ctx is cancelled, a signal arrives or one of
// the servers fails, then releases the store.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	// One budget per client across both transports.
	app.limiter = ratelimit.New(ratelimit.Config{
		PerMinute: app.config.LoginRatePerMinute,
		Burst:     app.config.LoginBurst,
	})
	defer app.limiter.Stop()

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close error", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
