package system

import (
	"encoding/json"
	"sync"

	"go-erp/internal/features/history"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans audit trail entries out to connected websocket clients. A slow
// or dead client is dropped rather than blocking the rest.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]chan []byte),
		logger:  logger,
	}
}

func (h *Hub) register(conn *websocket.Conn) chan []byte {
	ch := make(chan []byte, 32)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(ch)
	}
	h.mu.Unlock()
}

// PublishHistory implements history.Publisher.
func (h *Hub) PublishHistory(entry history.HistoryEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		h.logger.Error("failed to encode history entry", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, ch := range h.clients {
		select {
		case ch <- payload:
		default:
			h.logger.Warn("dropping slow websocket client",
				zap.String("remote", conn.RemoteAddr().String()))
		}
	}
}
