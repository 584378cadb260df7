// Package httpapi serves the swap flows as a JSON REST API under /api/v1,
// plus /healthz and /metrics.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/dmitrijs2005/swappool/internal/server/auth"
	"github.com/dmitrijs2005/swappool/internal/server/swap"
	"github.com/go-playground/validator/v10"
)

const shutdownTimeout = 5 * time.Second

// Sessions is implemented by *auth.Issuer.
type Sessions interface {
	Start(deviceSecret []byte) (auth.Session, error)
	Verify(token string) (string, error)
}

// HTTPObserver records finished requests. Optional.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Options configure the optional parts of the router.
type Options struct {
	Observer    HTTPObserver
	Metrics     http.Handler
	CORSOrigins []string
}

type Server struct {
	address  string
	swap     *swap.Service
	sessions Sessions
	logger   logging.Logger
	opts     Options
	validate *validator.Validate
	handler  http.Handler
}

func NewServer(address string, l logging.Logger, svc *swap.Service, sessions Sessions, opts Options) *Server {
	s := &Server{
		address:  address,
		swap:     svc,
		sessions: sessions,
		logger:   l.With("module", "http_server"),
		opts:     opts,
		validate: validator.New(),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
