package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
}

// Stream upgrades to a websocket that receives the session's snapshot on
// connect and again after every transition. Client messages are ignored.
func (h *Handler) Stream(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.svc.Snapshot(id); err != nil {
		h.writeError(c, err)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("Failed to upgrade websocket for session %s: %v", id, err)
		return
	}
	defer ws.Close()

	hub := h.svc.Hub()
	if err := hub.AddConnection(id, ws); err != nil {
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		return
	}
	defer hub.RemoveConnection(id, ws)

	// All writes to ws go through the hub.
	if err := h.svc.Push(id); err != nil {
		return
	}

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			h.logger.Infof("Websocket for session %s disconnected: %v", id, err)
			return
		}
	}
}
