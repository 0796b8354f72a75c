package alerts

import (
	"sync"

	"conectasonda/internal/domain"

	"github.com/gorilla/websocket"
)

// Hub fans high and critical predictions out to connected dashboard
// clients. Delivery is best effort: a client that cannot be written to is
// dropped.
type Hub struct {
	mutex       sync.RWMutex
	nextID      int64
	connections map[int64]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

type alertMessage struct {
	Kind       string             `json:"kind"`
	Prediction *domain.Prediction `json:"prediction"`
}

// PredictionAlert implements the prediction engine's notifier seam.
func (h *Hub) PredictionAlert(p *domain.Prediction) {
	msg := alertMessage{Kind: "prediction_alert", Prediction: p}

	h.mutex.RLock()
	conns := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mutex.RUnlock()

	for id, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.unregister(id)
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	h.connections[h.nextID] = conn
	return h.nextID
}

func (h *Hub) unregister(id int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, ok := h.connections[id]; ok {
		_ = conn.Close()
		delete(h.connections, id)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, id)
	}
}
