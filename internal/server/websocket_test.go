package server

import (
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialSession(t *testing.T, s *Server) (*websocket.Conn, func()) {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	return conn, func() {
		_ = conn.Close()
		ts.Close()
	}
}

func TestWebSocketSession(t *testing.T) {
	s := newTestServer(t, nil)
	conn, done := dialSession(t, s)
	defer done()

	require.NoError(t, conn.WriteJSON(Request{
		ID:   "ws-1",
		Op:   "add4d",
		Args: []byte(`{"float":[0.25,0.5,0.75],"int":{"x":1,"y":2,"z":3}}`),
	}))

	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "ws-1", resp.ID)
	require.Equal(t, mgl64.Vec4{1.25, 2.5, 3.75, 1}, decodeResult[mgl64.Vec4](t, resp))

	// A malformed frame is answered, the session stays open.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	require.NoError(t, conn.ReadJSON(&resp))
	require.Contains(t, resp.Error, "invalid arguments")

	require.NoError(t, conn.WriteJSON(Request{ID: "ws-2", Op: "missing"}))
	resp = Response{}
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "ws-2", resp.ID)
	require.Contains(t, resp.Error, "unknown operation")

	require.Equal(t, int64(1), atomic.LoadInt64(&s.sessionCount))
}

func TestWebSocketSessionCleanup(t *testing.T) {
	s := newTestServer(t, nil)
	conn, done := dialSession(t, s)
	defer done()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&s.sessionCount) == 1
	}, time.Second, 10*time.Millisecond)

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, msg))

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&s.sessionCount) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestWebSocketSessionRejectedWhileStopping(t *testing.T) {
	s := newTestServer(t, nil)
	// A session that registers after Stop has swept the map closes itself.
	atomic.StoreInt32(&s.stopping, 1)

	conn, done := dialSession(t, s)
	defer done()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	require.Equal(t, int64(0), atomic.LoadInt64(&s.sessionCount))
	s.sessions.Range(func(key, _ any) bool {
		t.Fatalf("session %v left registered", key)
		return false
	})
}
