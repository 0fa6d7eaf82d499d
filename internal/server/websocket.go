package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/geomath/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const closeWriteWait = time.Second

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error.
		s.logger.Warn("WebSocket upgrade failed", log.Error(err))
		return
	}

	id := uuid.NewString()
	s.sessions.Store(id, conn)
	if atomic.LoadInt32(&s.stopping) == 1 {
		// Stop already swept the session map.
		s.sessions.Delete(id)
		closeSession(conn, websocket.CloseGoingAway, "server shutting down")
		return
	}
	atomic.AddInt64(&s.sessionCount, 1)

	logger := s.logger.With(
		log.String("session_id", id),
		log.String("remote_addr", conn.RemoteAddr().String()))
	logger.Info("Session opened",
		log.Int64("open_sessions", atomic.LoadInt64(&s.sessionCount)))

	defer func() {
		s.sessions.Delete(id)
		atomic.AddInt64(&s.sessionCount, -1)
		_ = conn.Close()
		logger.Info("Session closed")
	}()

	s.serveSession(conn, logger)
}

// serveSession answers one Response per incoming frame until the peer closes.
func (s *Server) serveSession(conn *websocket.Conn, logger log.Log) {
	conn.SetReadLimit(s.config.MaxBodyBytes)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Session read failed", log.Error(err))
			}
			return
		}

		resp := s.service.ConvertFrame(data)

		if s.config.WriteTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("Session write failed", log.Error(err))
			return
		}
	}
}

func closeSession(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait))
	_ = conn.Close()
}
