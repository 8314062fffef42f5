package system

import (
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub    *Hub
	Logger *zap.Logger
}

func NewWebSocketController(hub *Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{Hub: hub, Logger: logger}
}

// HandleApprovalFeed streams audit trail entries to the client until it
// disconnects. Inbound messages are read only to detect the close.
func (h *WebSocketController) HandleApprovalFeed(c *websocket.Conn) {
	ch := h.Hub.register(c)
	defer func() {
		h.Hub.unregister(c)
		c.Close()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.Logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
