package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
	audit      AuditLogger
	logger     *zap.Logger
}

func NewServer(addr string, handler http.Handler, audit AuditLogger, logger ...*zap.Logger) *Server {
	l := zap.L().Named("bootstrap.server")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bootstrap.server")
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		audit:  audit,
		logger: l,
	}
}

// Run serves until SIGINT/SIGTERM or context cancellation, then drains
// in-flight requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
		s.audit.Log(ctx, AuditLog{Actor: "system", Action: "server_start", Resource: s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown incomplete", zap.Error(err))
		return err
	}

	s.audit.Log(context.Background(), AuditLog{Actor: "system", Action: "server_stop", Resource: s.httpServer.Addr})
	s.logger.Info("http server stopped")
	return nil
}
