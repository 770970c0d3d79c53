package gateway

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/bm254now/team-coconut/internal/config"
	"github.com/bm254now/team-coconut/internal/game"
	"github.com/bm254now/team-coconut/internal/registry"
)

// ResultSaver is the outbound persistence boundary for finished games.
type ResultSaver interface {
	SaveResult(roomID string, players []game.Player) error
}

// Gateway routes inbound client events to registry operations and fans the
// resulting snapshots out to every connection joined to the room. Timer
// expiries re-enter through the same round-result path as manual answers.
type Gateway struct {
	cfg     config.Config
	reg     *registry.Registry
	hub     *Hub
	results ResultSaver
}

func New(cfg config.Config, reg *registry.Registry, results ResultSaver) *Gateway {
	g := &Gateway{
		cfg:     cfg,
		reg:     reg,
		hub:     NewHub(),
		results: results,
	}
	reg.OnTimeout(g.handleTimeout)
	return g
}

func (g *Gateway) handleTimeout(roomID string, result registry.RoundResult) {
	g.hub.Broadcast(roomID, outbound(eventRoundResult, roomID, resultPayload{Result: result}))
}

func (g *Gateway) dispatch(c *Conn, event Event) {
	switch event.Type {
	case eventJoinRoom:
		g.handleJoin(c, event.RoomID)
	case eventStartGame:
		g.handleStart(c, event.RoomID)
	case eventSendClue:
		g.handleClue(c, event)
	case eventTyping:
		g.hub.BroadcastExcept(event.RoomID, c, outbound(eventTyping, event.RoomID, typingPayload{PlayerID: c.playerID}))
	case eventSendAnswer:
		g.handleAnswer(c, event)
	case eventMoveRound:
		g.handleMoveRound(c, event.RoomID)
	case eventLeaveGame:
		g.handleLeave(c, event.RoomID)
	case eventEndGame:
		g.handleEnd(c, event.RoomID)
	default:
		g.sendError(c, event.RoomID, "unknown event type")
	}
}

// handleJoin adds the player to the room, creating the room on the first
// join of an unseen identifier.
func (g *Gateway) handleJoin(c *Conn, roomID string) {
	if roomID == "" {
		g.sendError(c, roomID, "roomId is required")
		return
	}
	if !g.reg.Exists(roomID) {
		if err := g.reg.CreateRoom(roomID); err != nil && !errors.Is(err, registry.ErrRoomExists) {
			g.sendError(c, roomID, err.Error())
			return
		}
	}
	snapshot, err := g.reg.JoinRoom(roomID, c.playerID, c.name)
	if err != nil {
		g.sendError(c, roomID, err.Error())
		return
	}
	g.hub.Join(roomID, c)
	log.Info().Str("room_id", roomID).Str("player_id", c.playerID).Msg("player joined")
	g.hub.BroadcastExcept(roomID, c, outbound(eventPlayerJoined, roomID, joinedPayload{
		Player:   playerRef{ID: c.playerID, Name: c.name},
		Snapshot: snapshot,
	}))
}

func (g *Gateway) handleStart(c *Conn, roomID string) {
	snapshot, started, err := g.reg.StartGame(roomID)
	if err != nil {
		g.sendError(c, roomID, err.Error())
		return
	}
	if !started {
		// Not enough players yet, or already running. Benign either way.
		g.hub.Send(c, outbound(eventGameStarted, roomID, snapshotPayload{Snapshot: snapshot}))
		return
	}
	g.hub.Broadcast(roomID, outbound(eventGameStarted, roomID, snapshotPayload{Snapshot: snapshot}))
}

func (g *Gateway) handleClue(c *Conn, event Event) {
	var payload cluePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		g.sendError(c, event.RoomID, "invalid clue payload")
		return
	}
	snapshot, _, err := g.reg.SubmitClue(event.RoomID, c.playerID, payload.Clue)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidTransition) {
			return
		}
		g.sendError(c, event.RoomID, err.Error())
		return
	}
	g.hub.Broadcast(event.RoomID, outbound(eventClueUpdate, event.RoomID, snapshotPayload{Snapshot: snapshot}))
}

// handleAnswer closes the round. A late submission that lost the race
// against the timer is discarded silently, so the round-result broadcast
// happens exactly once per round.
func (g *Gateway) handleAnswer(c *Conn, event Event) {
	var payload answerPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		g.sendError(c, event.RoomID, "invalid answer payload")
		return
	}
	result, err := g.reg.EndRound(event.RoomID, payload.Answer)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidTransition) {
			return
		}
		g.sendError(c, event.RoomID, err.Error())
		return
	}
	g.hub.Broadcast(event.RoomID, outbound(eventRoundResult, event.RoomID, resultPayload{Result: result}))
}

func (g *Gateway) handleMoveRound(c *Conn, roomID string) {
	quorum, err := g.reg.AckNextRound(roomID, c.playerID)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidTransition) {
			return
		}
		g.sendError(c, roomID, err.Error())
		return
	}
	if !quorum {
		return
	}
	snapshot, err := g.reg.MoveToNextRound(roomID)
	if err != nil {
		// Another ack already advanced the round.
		if errors.Is(err, registry.ErrInvalidTransition) {
			return
		}
		g.sendError(c, roomID, err.Error())
		return
	}
	g.hub.Broadcast(roomID, outbound(eventRoundStarted, roomID, snapshotPayload{Snapshot: snapshot}))
}

func (g *Gateway) handleLeave(c *Conn, roomID string) {
	if err := g.reg.LeavePlayer(roomID, c.playerID); err != nil {
		g.sendError(c, roomID, err.Error())
		return
	}
	g.hub.Leave(c)
	log.Info().Str("room_id", roomID).Str("player_id", c.playerID).Msg("player left")
}

// handleEnd tears the room down and hands the final roster to the results
// store. A persistence failure is logged and does not undo the teardown.
func (g *Gateway) handleEnd(c *Conn, roomID string) {
	players, err := g.reg.EndGame(roomID)
	if err != nil {
		g.sendError(c, roomID, err.Error())
		return
	}
	g.hub.Broadcast(roomID, outbound(eventGameEnded, roomID, nil))
	g.hub.CloseRoom(roomID)
	if g.results != nil {
		if err := g.results.SaveResult(roomID, players); err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to persist game result")
		}
	}
}

func (g *Gateway) sendError(c *Conn, roomID, message string) {
	g.hub.Send(c, outbound(eventError, roomID, errorPayload{Message: message}))
}
