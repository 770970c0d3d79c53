package gateway

import (
	"encoding/json"

	"github.com/bm254now/team-coconut/internal/game"
	"github.com/bm254now/team-coconut/internal/registry"
)

// Inbound event types. Each frame names an operation and the room it
// targets; the player identity comes from the connection, which the
// handshake layer authenticated before handing it to the gateway.
const (
	eventJoinRoom   = "join-room"
	eventStartGame  = "start-game"
	eventSendClue   = "send-clue"
	eventTyping     = "typing"
	eventSendAnswer = "send-answer"
	eventMoveRound  = "move-round"
	eventLeaveGame  = "leave-game"
	eventEndGame    = "end-game"
)

// Outbound event types.
const (
	eventPlayerJoined = "player-joined"
	eventGameStarted  = "game-started"
	eventClueUpdate   = "clue-update"
	eventRoundResult  = "round-result"
	eventRoundStarted = "round-started"
	eventGameEnded    = "game-ended"
	eventError        = "error"
)

// Event is the wire frame in both directions.
type Event struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type cluePayload struct {
	Clue string `json:"clue"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type playerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type joinedPayload struct {
	Player   playerRef     `json:"player"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type snapshotPayload struct {
	Snapshot game.Snapshot `json:"snapshot"`
}

type typingPayload struct {
	PlayerID string `json:"playerId"`
}

type resultPayload struct {
	Result registry.RoundResult `json:"result"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func outbound(eventType, roomID string, payload any) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{Type: eventType, RoomID: roomID}
	}
	return Event{Type: eventType, RoomID: roomID, Payload: data}
}
