package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/quic-go/quic-go"

	"github.com/zeusync/geomath/internal/config"
	"github.com/zeusync/geomath/internal/core/observability/log"
)

// Server exposes a Service over HTTP, WebSocket and, when configured, QUIC.
type Server struct {
	config  config.ServerConfig
	service *Service
	logger  log.Log

	mux      *http.ServeMux
	serveErr chan error

	mu           sync.Mutex
	httpServer   *http.Server
	listener     net.Listener
	quicListener *quic.Listener

	// WebSocket sessions
	sessions     sync.Map // map[string]*websocket.Conn
	sessionCount int64    // atomic

	quicConns sync.Map // map[string]*quic.Conn

	running  int32 // atomic bool
	stopping int32 // atomic bool, set while Stop sweeps sessions
}

// NewServer creates a server. Routes are registered immediately, so Handler can
// be used with httptest without calling Start.
func NewServer(cfg config.ServerConfig, service *Service, logger log.Log) *Server {
	s := &Server{
		config:   cfg,
		service:  service,
		logger:   logger.With(log.String("component", "server")),
		mux:      http.NewServeMux(),
		serveErr: make(chan error, 1),
	}
	s.routes()

	s.logger.Info("Server created",
		log.String("listen_addr", cfg.ListenAddr),
		log.Int("operations", len(service.Operations())))

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.mux }

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}
	atomic.StoreInt32(&s.stopping, 0)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return err
	}

	httpServer := &http.Server{
		Handler:      s.mux,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.mu.Lock()
	s.listener = listener
	s.httpServer = httpServer
	s.mu.Unlock()

	if s.config.QUICAddr != "" {
		if err := s.startQUIC(); err != nil {
			_ = listener.Close()
			atomic.StoreInt32(&s.running, 0)
			s.logger.Error("Failed to create QUIC listener", log.Error(err))
			return err
		}
	}

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", log.Error(err))
			s.serveErr <- err
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Stop closes open WebSocket sessions and QUIC connections and shuts the HTTP
// server down, waiting for in-flight requests until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}
	// Sessions registered after the sweep below see the flag and close themselves.
	atomic.StoreInt32(&s.stopping, 1)

	s.logger.Info("Stopping server",
		log.Int64("open_sessions", atomic.LoadInt64(&s.sessionCount)))

	s.sessions.Range(func(_, value any) bool {
		if conn, ok := value.(*websocket.Conn); ok {
			closeSession(conn, websocket.CloseGoingAway, "server shutting down")
		}
		return true
	})

	s.mu.Lock()
	httpServer := s.httpServer
	quicListener := s.quicListener
	s.quicListener = nil
	s.mu.Unlock()

	if quicListener != nil {
		_ = quicListener.Close()
		s.quicConns.Range(func(_, value any) bool {
			if conn, ok := value.(*quic.Conn); ok {
				_ = conn.CloseWithError(0, "server shutting down")
			}
			return true
		})
	}

	if httpServer == nil {
		return nil
	}

	err := httpServer.Shutdown(ctx)
	s.logger.Info("Server stopped")
	return err
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// QUICAddr returns the bound QUIC address, or nil when QUIC is not serving.
func (s *Server) QUICAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quicListener == nil {
		return nil
	}
	return s.quicListener.Addr()
}

// Errors receives the error that ended serving, if it was not a regular Stop.
func (s *Server) Errors() <-chan error { return s.serveErr }
