package console

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"advisory-console/internal/logging"
)

// DefaultWriteTimeout bounds a single websocket write.
const DefaultWriteTimeout = 10 * time.Second

// peer serializes writes to one connection.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub fans session snapshots out to the websocket connections watching each session.
type Hub struct {
	connections  map[string]map[*websocket.Conn]*peer // sessionID -> connections
	mutex        sync.Mutex
	maxConns     int
	writeTimeout time.Duration
	logger       *logging.Logger
}

func NewHub(maxConns int, logger *logging.Logger) *Hub {
	return &Hub{
		connections:  make(map[string]map[*websocket.Conn]*peer),
		maxConns:     maxConns,
		writeTimeout: DefaultWriteTimeout,
		logger:       logger,
	}
}

// AddConnection registers conn for a session. It fails once the session has maxConns connections.
func (h *Hub) AddConnection(sessionID string, conn *websocket.Conn) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, exists := h.connections[sessionID]; !exists {
		h.connections[sessionID] = make(map[*websocket.Conn]*peer)
	}
	if len(h.connections[sessionID]) >= h.maxConns {
		h.logger.Warnf("Max connections reached for session %s", sessionID)
		return fmt.Errorf("session %s already has %d connections", sessionID, h.maxConns)
	}
	h.connections[sessionID][conn] = &peer{conn: conn}
	h.logger.Infof("Added WebSocket connection for session %s (total: %d)", sessionID, len(h.connections[sessionID]))
	return nil
}

// RemoveConnection removes a WebSocket connection
func (h *Hub) RemoveConnection(sessionID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if conns, exists := h.connections[sessionID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.connections, sessionID)
		}
		h.logger.Infof("Removed WebSocket connection for session %s (remaining: %d)", sessionID, len(conns))
	}
}

// CloseSession drops and closes every connection of a session.
func (h *Hub) CloseSession(sessionID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.connections[sessionID] {
		_ = conn.Close()
	}
	delete(h.connections, sessionID)
}

// Count returns the number of open connections for a session.
func (h *Hub) Count(sessionID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.connections[sessionID])
}

func (h *Hub) peers(sessionID string) []*peer {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	out := make([]*peer, 0, len(h.connections[sessionID]))
	for _, p := range h.connections[sessionID] {
		out = append(out, p)
	}
	return out
}

// Send writes message to every connection of a session. Writes happen outside
// the hub lock and are bounded by the write timeout. Connections that fail are dropped.
func (h *Hub) Send(sessionID string, message []byte) {
	for _, p := range h.peers(sessionID) {
		p.mu.Lock()
		_ = p.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		err := p.conn.WriteMessage(websocket.TextMessage, message)
		p.mu.Unlock()
		if err != nil {
			h.logger.Errorf("Failed to send WebSocket message to session %s: %v", sessionID, err)
			_ = p.conn.Close()
			h.RemoveConnection(sessionID, p.conn)
		}
	}
}
