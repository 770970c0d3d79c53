package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/bm254now/team-coconut/internal/registry"
)

type createRoomRequest struct {
	RoomID string `json:"roomId" binding:"omitempty,min=1,max=64"`
}

// Routes builds the gin engine: the small REST surface the lobby uses plus
// the websocket upgrade endpoint.
func (g *Gateway) Routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST("/api/rooms", g.handleCreateRoom)
	engine.GET("/api/rooms/:roomID", g.handleRoomSnapshot)
	engine.GET("/ws", g.handleWebsocket)
	return engine
}

func (g *Gateway) handleCreateRoom(c *gin.Context) {
	var req createRoomRequest
	if !bindJSON(c, &req, bindMessages{
		"RoomID": {"max": "roomId is too long"},
	}, "invalid room request") {
		return
	}
	roomID := req.RoomID
	if roomID == "" {
		roomID = uuid.NewString()
	}
	if err := g.reg.CreateRoom(roomID); err != nil {
		if errors.Is(err, registry.ErrRoomExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "room already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Info().Str("room_id", roomID).Msg("room created")
	c.JSON(http.StatusCreated, gin.H{"roomId": roomID})
}

func (g *Gateway) handleRoomSnapshot(c *gin.Context) {
	roomID := c.Param("roomID")
	snapshot, err := g.reg.Snapshot(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// handleWebsocket upgrades the connection and starts the event loop. The
// player identity arrives already authenticated from the handshake layer in
// front of this service; the gateway only requires it to be present.
func (g *Gateway) handleWebsocket(c *gin.Context) {
	playerID := c.Query("playerId")
	name := c.Query("name")
	if playerID == "" || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId and name are required"})
		return
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	socket, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn := &Conn{
		id:       uuid.NewString(),
		playerID: playerID,
		name:     name,
		socket:   socket,
		limiter:  rate.NewLimiter(rate.Limit(g.cfg.EventsPerSecond), g.cfg.EventsPerSecond),
	}
	log.Info().Str("conn_id", conn.id).Str("player_id", playerID).Msg("connection established")
	go g.readPump(conn)
}

func (g *Gateway) readPump(c *Conn) {
	defer g.hub.Remove(c)
	for {
		_, data, err := c.socket.ReadMessage()
		if err != nil {
			log.Info().Str("conn_id", c.id).Str("player_id", c.playerID).Msg("connection closed")
			return
		}
		if !c.limiter.Allow() {
			continue
		}
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			g.sendError(c, "", "invalid event frame")
			continue
		}
		g.dispatch(c, event)
	}
}
