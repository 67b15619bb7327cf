package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/juancamilo2341431/netrix-backend/api/routes"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	http *http.Server
	logg *logger.Logger
}

// NewServer builds the API server from the wired dependencies.
func NewServer(deps routes.Deps) (*Server, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Server{
		http: &http.Server{
			Addr:              ":" + deps.Config.App.Port,
			Handler:           routes.NewRouter(deps),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logg: deps.Logger,
	}, nil
}

// Run serves until the context is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logg.Info(ctx, "api listening on "+s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logg.Info(shutdownCtx, "api shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
