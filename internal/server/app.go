// Package server wires the pool, its optional backends and both transports
// into one process and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/dmitrijs2005/swappool/internal/server/auth"
	"github.com/dmitrijs2005/swappool/internal/server/config"
	"github.com/dmitrijs2005/swappool/internal/server/httpapi"
	"github.com/dmitrijs2005/swappool/internal/server/media"
	"github.com/dmitrijs2005/swappool/internal/server/metrics"
	"github.com/dmitrijs2005/swappool/internal/server/mirror"
	"github.com/dmitrijs2005/swappool/internal/server/swap"

	gs "github.com/dmitrijs2005/swappool/internal/server/grpc"
)

const metricsNamespace = "swappool"

type App struct {
	config   *config.Config
	logger   logging.Logger
	pool     *pool.Pool
	swap     *swap.Service
	sessions *auth.Issuer
	metrics  *metrics.Collector

	// optional backends, nil when not configured
	store   *mirror.Store
	writer  *mirror.Writer
	janitor *media.Janitor
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	app := &App{
		config:   c,
		logger:   logger,
		sessions: auth.NewIssuer(c.SecretKey, c.AccessTokenValidityDuration),
	}

	app.pool = pool.New(pool.Options{
		TTL:              c.ContentTTL,
		MaxHistory:       c.MaxViewHistory,
		MaxCaptionLength: c.MaxCaptionLength,
		Logger:           logger,
	})

	app.metrics = metrics.NewCollector(metricsNamespace, app.pool)
	app.pool.Subscribe(app.metrics)

	opts := swap.Options{
		Observer:            app.metrics,
		AllowFilterFallback: c.AllowFilterFallback,
		Logger:              logger,
	}

	if c.MediaEnabled() {
		s3, err := media.NewS3Store(ctx, media.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("media init error: %w", err)
		}
		storage := media.NewStorage(s3, c.S3Bucket)
		app.janitor = media.NewJanitor(storage, logger)
		app.pool.Subscribe(app.janitor)
		opts.Media = storage
	} else {
		logger.Info(ctx, "Object storage not configured, accepting external media URLs only")
	}

	if c.MirrorEnabled() {
		store, err := mirror.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.store = store
		app.writer = mirror.NewWriter(store.Repository(), mirror.DefaultBreakerSettings(), logger)
		app.pool.Subscribe(app.writer)
		opts.Ledger = store
		opts.Comments = store
		opts.Stats = store
	} else {
		logger.Info(ctx, "Database not configured, reactions and comments are kept in memory")
	}

	app.swap = swap.NewService(app.pool, opts)

	return app, nil
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

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.swap, app.sessions, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.swap, app.sessions, httpapi.Options{
		Observer:    app.metrics,
		Metrics:     app.metrics.Handler(),
		CORSOrigins: app.config.CORSOrigins,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives or a server fails, then waits for
// every worker to stop.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"mirror", app.config.MirrorEnabled(),
		"media", app.config.MediaEnabled(),
		"ttl", app.config.ContentTTL.String(),
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() { app.pool.Run(ctx, app.config.SweepInterval) })
	if app.writer != nil {
		run(func() { app.writer.Run(ctx) })
	}
	if app.janitor != nil {
		run(func() { app.janitor.Run(ctx) })
	}
	run(func() { app.startGRPCServer(ctx, cancelFunc) })
	run(func() { app.startHTTPServer(ctx, cancelFunc) })

	wg.Wait()

	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.logger.Warn(ctx, "closing database", "error", err)
		}
	}

	app.logger.Info(context.Background(), "App stopped")
}
