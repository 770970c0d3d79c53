package gateway

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Conn is one authenticated client connection. The identity fields are
// supplied by the upstream handshake; the gateway never verifies
// credentials itself. Writes are serialized by the write mutex because
// broadcasts and the read loop's replies share the socket.
type Conn struct {
	id       string
	playerID string
	name     string
	socket   *websocket.Conn
	limiter  *rate.Limiter
	writeMu  sync.Mutex

	mu   sync.Mutex
	room string
}

func (c *Conn) setRoom(roomID string) {
	c.mu.Lock()
	c.room = roomID
	c.mu.Unlock()
}

// Room returns the room the connection is currently joined to, or "".
func (c *Conn) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Conn) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.socket.WriteMessage(websocket.TextMessage, data)
}

// Hub owns the room-to-connection membership. Transport membership is a
// gateway concern; the match engine never sees a connection.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Conn]struct{})}
}

// Join subscribes the connection to a room, leaving any previous one.
func (h *Hub) Join(roomID string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c)
	group := h.rooms[roomID]
	if group == nil {
		group = make(map[*Conn]struct{})
		h.rooms[roomID] = group
	}
	group[c] = struct{}{}
	c.setRoom(roomID)
}

// Leave unsubscribes the connection from its room without closing it.
func (h *Hub) Leave(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c)
}

func (h *Hub) leaveLocked(c *Conn) {
	roomID := c.Room()
	if roomID == "" {
		return
	}
	group := h.rooms[roomID]
	if group != nil {
		delete(group, c)
		if len(group) == 0 {
			delete(h.rooms, roomID)
		}
	}
	c.setRoom("")
}

// Remove drops the connection from its room and closes the socket.
func (h *Hub) Remove(c *Conn) {
	h.Leave(c)
	_ = c.socket.Close()
}

// CloseRoom drops every connection subscribed to the room.
func (h *Hub) CloseRoom(roomID string) {
	h.mu.Lock()
	group := h.rooms[roomID]
	delete(h.rooms, roomID)
	h.mu.Unlock()
	for c := range group {
		c.setRoom("")
	}
}

// Send writes one event to a single connection.
func (h *Hub) Send(c *Conn, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := c.write(data); err != nil {
		h.Remove(c)
	}
}

// Broadcast fans an event out to every connection joined to the room.
func (h *Hub) Broadcast(roomID string, event Event) {
	h.broadcast(roomID, nil, event)
}

// BroadcastExcept fans an event out to the room, skipping one connection.
func (h *Hub) BroadcastExcept(roomID string, except *Conn, event Event) {
	h.broadcast(roomID, except, event)
}

func (h *Hub) broadcast(roomID string, except *Conn, event Event) {
	h.mu.Lock()
	group := h.rooms[roomID]
	conns := make([]*Conn, 0, len(group))
	for c := range group {
		if c != except {
			conns = append(conns, c)
		}
	}
	h.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	for _, c := range conns {
		if err := c.write(data); err != nil {
			h.Remove(c)
		}
	}
}

// RoomSize reports how many connections are joined to the room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}
