package broadcast

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"pinboard/internal/event"
	"pinboard/internal/observability"
)

// Hub holds the currently connected live channels and fans events out to
// all of them. It implements event.Sink. Delivery is best effort: there
// is no acknowledgment, no replay for sessions that connect later, and
// iteration order over sessions is unspecified.
type Hub struct {
	serviceName string

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub(serviceName string) *Hub {
	return &Hub{
		serviceName: serviceName,
		sessions:    make(map[string]*Session),
	}
}

func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
}

func (h *Hub) Remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Only remove the same session object; a late Remove from a session
	// that was already replaced must not evict the current one.
	if current, ok := h.sessions[s.ID]; ok && current == s {
		delete(h.sessions, s.ID)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Publish encodes the event once and delivers it to every registered
// session. Sessions that cannot keep up miss the event.
func (h *Hub) Publish(ctx context.Context, evt event.Event) {
	payload, err := evt.Marshal()
	if err != nil {
		observability.GetLogger(ctx).Error("hub: failed to encode event",
			zap.String("event", evt.Name), zap.Error(err))
		return
	}

	observability.BroadcastEventsTotal.WithLabelValues(h.serviceName, evt.Name).Inc()
	h.BroadcastRaw(payload)
}

// BroadcastRaw delivers an already-encoded event to every session. Used
// by Publish and by the cross-instance relay.
func (h *Hub) BroadcastRaw(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.sessions {
		if !s.TrySend(payload) {
			observability.BroadcastDropsTotal.WithLabelValues(h.serviceName).Inc()
		}
	}
}

func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.sessions {
		s.Close()
	}
	h.sessions = make(map[string]*Session)
}
