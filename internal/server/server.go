package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pinboard/internal/observability"
)

type Server struct {
	httpServer *http.Server
}

func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	observability.GetLogger(context.Background()).Info("starting server",
		zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	observability.GetLogger(ctx).Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
