package broadcast

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pinboard/internal/observability"
)

// Handler upgrades HTTP requests to live channels and registers them
// with the hub. Any client may connect; there is no subscriber auth.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := observability.GetLogger(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade error", zap.Error(err))
		return
	}

	session := NewSession(uuid.NewString(), conn)
	h.hub.Add(session)
	session.Start()

	log.Info("client connected", zap.String("session_id", session.ID))
	observability.WebSocketConnectionsActive.WithLabelValues(h.hub.serviceName).Inc()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go h.readLoop(session)
}

// readLoop drains client frames so control messages are processed; no
// client-to-server events are defined beyond connect/disconnect.
func (h *Handler) readLoop(s *Session) {
	defer func() {
		h.hub.Remove(s)
		s.Close()
		observability.GetLogger(context.Background()).Info("client disconnected", zap.String("session_id", s.ID))
		observability.WebSocketConnectionsActive.WithLabelValues(h.hub.serviceName).Dec()
	}()

	for {
		if _, _, err := s.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				observability.GetLogger(context.Background()).Error("read loop error",
					zap.String("session_id", s.ID), zap.Error(err))
			}
			return
		}
	}
}
