package registry

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bm254now/team-coconut/internal/config"
	"github.com/bm254now/team-coconut/internal/game"
)

// Registry maps room identifiers to matches and owns everything that spans
// a match and its round timer: lifecycle, the per-round clue buffer, and the
// inter-round ready barrier. Rooms are independent units of mutual
// exclusion: every operation locks only the room it touches, so concurrent
// rooms never block one another.
type Registry struct {
	cfg       config.Config
	mu        sync.RWMutex
	rooms     map[string]*room
	onTimeout func(roomID string, result RoundResult)
}

type room struct {
	mu        sync.Mutex
	match     *game.Match
	timer     *time.Timer
	timerGen  int
	roundOpen bool
	clues     []game.Clue
	ready     map[string]struct{}
}

// RoundResult reports the outcome of a round: whether the guess was
// correct, whether the round that just completed was the final one, and the
// state to broadcast. Callers pick end-game vs. next-round from LastRound.
type RoundResult struct {
	Correct   bool          `json:"isCorrect"`
	LastRound bool          `json:"isLastRound"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

func New(cfg config.Config) *Registry {
	return &Registry{
		cfg:   cfg,
		rooms: make(map[string]*room),
	}
}

// OnTimeout registers the callback invoked with the round result when a
// room's timer expires. Called once at wiring time, before any room exists.
func (r *Registry) OnTimeout(fn func(roomID string, result RoundResult)) {
	r.onTimeout = fn
}

// CreateRoom installs a fresh, uninitialized match under the identifier.
func (r *Registry) CreateRoom(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; ok {
		return ErrRoomExists
	}
	r.rooms[id] = &room{
		match: game.NewMatch(game.Scoring{
			GuesserPoints: r.cfg.GuesserPoints,
			CluePoints:    r.cfg.CluePoints,
		}),
		ready: make(map[string]struct{}),
	}
	return nil
}

// Exists reports whether the identifier is bound to a room.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[id]
	return ok
}

func (r *Registry) lookup(id string) (*room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return rm, nil
}

// JoinRoom adds a player to the room's roster, rejecting joins past the
// fixed party size.
func (r *Registry) JoinRoom(id, playerID, name string) (game.Snapshot, error) {
	rm, err := r.lookup(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.match.PlayerCount() >= r.cfg.PartySize {
		return game.Snapshot{}, ErrRoomFull
	}
	rm.match.AddPlayer(playerID, name)
	return rm.match.Snapshot(), nil
}

// StartGame initializes the match once the party is complete and arms the
// clue-phase timer. Below the required player count, or on a repeated start,
// it returns the current snapshot with started=false: a benign "not ready
// yet" outcome, not a failure.
func (r *Registry) StartGame(id string) (game.Snapshot, bool, error) {
	rm, err := r.lookup(id)
	if err != nil {
		return game.Snapshot{}, false, err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.match.Started() || rm.match.PlayerCount() != r.cfg.PartySize {
		return rm.match.Snapshot(), false, nil
	}
	rm.match.Init()
	rm.roundOpen = true
	rm.clues = nil
	rm.ready = make(map[string]struct{})
	r.armTimerLocked(id, rm, r.clueDuration())
	log.Info().Str("room_id", id).Msg("game started")
	return rm.match.Snapshot(), true, nil
}

// SubmitClue buffers a clue for the current round and records it on the
// player for broadcast. A resubmission from the same player replaces the
// earlier text. When every non-guesser has submitted, the clue phase is
// over and the timer re-arms for the guess phase. Clues are accepted only
// from non-guesser roster members: a guesser's clue would both earn them
// the clue bonus and flip the all-in count one submission early.
func (r *Registry) SubmitClue(id, playerID, text string) (game.Snapshot, bool, error) {
	rm, err := r.lookup(id)
	if err != nil {
		return game.Snapshot{}, false, err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if !rm.roundOpen {
		return game.Snapshot{}, false, ErrInvalidTransition
	}
	if !rm.match.HasPlayer(playerID) || rm.match.IsGuesser(playerID) {
		return game.Snapshot{}, false, ErrInvalidTransition
	}
	rm.match.SetClue(playerID, text)
	replaced := false
	for i := range rm.clues {
		if rm.clues[i].PlayerID == playerID {
			rm.clues[i].Text = text
			replaced = true
			break
		}
	}
	if !replaced {
		rm.clues = append(rm.clues, game.Clue{PlayerID: playerID, Text: text})
	}
	allIn := len(rm.clues) == rm.match.PlayerCount()-1
	if allIn {
		r.armTimerLocked(id, rm, r.guessDuration())
	}
	return rm.match.Snapshot(), allIn, nil
}

// EndRound closes the current round: it cancels the timer, evaluates the
// answer, and awards points on a correct guess. The round-open flag makes
// the transition exactly-once: whichever of the guesser's submission and
// the timer expiry arrives second finds the round closed and is discarded.
func (r *Registry) EndRound(id, answer string) (RoundResult, error) {
	rm, err := r.lookup(id)
	if err != nil {
		return RoundResult{}, err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return r.endRoundLocked(rm, answer)
}

func (r *Registry) endRoundLocked(rm *room, answer string) (RoundResult, error) {
	if !rm.roundOpen {
		return RoundResult{}, ErrInvalidTransition
	}
	rm.roundOpen = false
	r.cancelTimerLocked(rm)
	correct := rm.match.CheckAnswer(answer)
	if correct {
		rm.match.GivePoints(rm.clues)
	}
	return RoundResult{
		Correct:   correct,
		LastRound: rm.match.LastRound(),
		Snapshot:  rm.match.Snapshot(),
	}, nil
}

// AckNextRound records one player's acknowledgement of the inter-round
// screen and reports whether every player in the room has now acknowledged.
// The barrier resets when the round actually advances. Only roster members
// count: an ack from an unknown id must not stand in for a real player's.
func (r *Registry) AckNextRound(id, playerID string) (bool, error) {
	rm, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.roundOpen {
		return false, ErrInvalidTransition
	}
	if !rm.match.HasPlayer(playerID) {
		return false, ErrInvalidTransition
	}
	rm.ready[playerID] = struct{}{}
	return len(rm.ready) == rm.match.PlayerCount(), nil
}

// MoveToNextRound advances the match to the next round and re-arms the
// clue-phase timer. It refuses to advance while a round is still open,
// before the ready barrier is full, or past the final round; callers decide
// end-game vs. next-round from the RoundResult of the round that just ended.
func (r *Registry) MoveToNextRound(id string) (game.Snapshot, error) {
	rm, err := r.lookup(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.roundOpen || len(rm.ready) < rm.match.PlayerCount() || rm.match.LastRound() {
		return game.Snapshot{}, ErrInvalidTransition
	}
	snapshot := rm.match.NextRound()
	rm.clues = nil
	rm.ready = make(map[string]struct{})
	rm.roundOpen = true
	r.armTimerLocked(id, rm, r.clueDuration())
	return snapshot, nil
}

// LeavePlayer removes a player from the room's roster.
func (r *Registry) LeavePlayer(id, playerID string) error {
	rm, err := r.lookup(id)
	if err != nil {
		return err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.match.RemovePlayer(playerID)
	delete(rm.ready, playerID)
	return nil
}

// Snapshot returns the room's current broadcast state.
func (r *Registry) Snapshot(id string) (game.Snapshot, error) {
	rm, err := r.lookup(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.match.Snapshot(), nil
}

// EndGame tears the room down and returns the final roster so the caller
// can hand it to the results store.
func (r *Registry) EndGame(id string) ([]game.Player, error) {
	r.mu.Lock()
	rm, ok := r.rooms[id]
	if !ok {
		r.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	delete(r.rooms, id)
	r.mu.Unlock()

	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.roundOpen = false
	r.cancelTimerLocked(rm)
	log.Info().Str("room_id", id).Msg("game ended")
	return rm.match.Players(), nil
}

func (r *Registry) clueDuration() time.Duration {
	return time.Duration(r.cfg.ClueDurationSeconds) * time.Second
}

func (r *Registry) guessDuration() time.Duration {
	return time.Duration(r.cfg.GuessDurationSeconds) * time.Second
}
