package game

import "github.com/bm254now/team-coconut/internal/words"

// Scoring holds the point values awarded at the end of a correctly guessed
// round. Values come from configuration; the zero value awards nothing.
type Scoring struct {
	GuesserPoints int
	CluePoints    int
}

// Match is the state machine for a single game: the secret-word sequence,
// the round counter, the roster in join order, and the guesser rotation.
// Match does no locking and no I/O; the registry serializes access to it.
type Match struct {
	word     string
	round    int
	maxRound int
	words    []string
	players  []*Player
	scoring  Scoring
	started  bool
}

// PlayerState is the broadcast projection of one roster entry.
type PlayerState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsGuesser bool   `json:"isGuesser"`
	Clue      string `json:"clue"`
}

// Snapshot is the read-only projection of a match sent to clients.
type Snapshot struct {
	Word    string        `json:"word"`
	Round   int           `json:"round"`
	Players []PlayerState `json:"players"`
}

func NewMatch(scoring Scoring) *Match {
	return &Match{scoring: scoring}
}

// AddPlayer appends a player to the roster. Join order is significant: it
// fixes the guesser rotation for the whole match. Capacity is enforced by
// the registry, not here.
func (m *Match) AddPlayer(id, name string) {
	m.players = append(m.players, &Player{ID: id, Name: name})
}

// Init starts the match: the first joiner becomes the guesser, the word
// sequence is dealt (two rounds per player, no repeats) and the round
// counter resets. Calling Init on a running match resets it, so callers
// guard against double starts.
func (m *Match) Init() {
	for _, player := range m.players {
		player.IsGuesser = false
		player.Clue = ""
	}
	m.players[0].IsGuesser = true
	m.round = 0
	m.maxRound = len(m.players) * 2
	m.words = words.Deal(m.maxRound)
	m.word = m.words[0]
	m.started = true
}

// Started reports whether Init has run.
func (m *Match) Started() bool {
	return m.started
}

// CheckAnswer compares the candidate against the current secret word.
// The comparison is an exact, case-sensitive string match: "apple" does not
// match "Apple". Clients are expected to present the word as dealt.
func (m *Match) CheckAnswer(candidate string) bool {
	return m.word == candidate
}

// GivePoints awards the guesser bonus to the current guesser and the clue
// bonus to every non-guesser whose text was unique this round. Two players
// submitting the same clue text disqualifies both; uniqueness is value
// equality, not player identity. The guesser never earns the clue bonus,
// even if a clue under their id slipped into the buffer.
func (m *Match) GivePoints(clues []Clue) {
	unique := uniqueClueGivers(clues)
	for _, player := range m.players {
		if player.IsGuesser {
			player.addPoints(m.scoring.GuesserPoints)
			continue
		}
		if _, ok := unique[player.ID]; ok {
			player.addPoints(m.scoring.CluePoints)
		}
	}
}

func uniqueClueGivers(clues []Clue) map[string]struct{} {
	counts := make(map[string]int, len(clues))
	for _, clue := range clues {
		counts[clue.Text]++
	}
	givers := make(map[string]struct{})
	for _, clue := range clues {
		if counts[clue.Text] == 1 {
			givers[clue.PlayerID] = struct{}{}
		}
	}
	return givers
}

// NextRound advances the round counter, rotates the guesser to the next
// player in join order and reveals the next secret word. The rotation is a
// fixed cyclic schedule over join order; it does not adapt to players
// leaving mid-match.
func (m *Match) NextRound() Snapshot {
	m.round++
	count := len(m.players)
	m.players[(m.round-1)%count].IsGuesser = false
	m.players[m.round%count].IsGuesser = true
	m.word = m.words[m.round]
	for _, player := range m.players {
		player.Clue = ""
	}
	return m.Snapshot()
}

// LastRound reports whether the current round is the final one. Each player
// guesses exactly twice, so the match ends after 2×N rounds.
func (m *Match) LastRound() bool {
	return m.round+1 == m.maxRound
}

// SetClue records a player's submitted clue text for the current round.
func (m *Match) SetClue(playerID, text string) {
	for _, player := range m.players {
		if player.ID == playerID {
			player.Clue = text
			return
		}
	}
}

// HasPlayer reports whether the id belongs to the roster.
func (m *Match) HasPlayer(id string) bool {
	for _, player := range m.players {
		if player.ID == id {
			return true
		}
	}
	return false
}

// IsGuesser reports whether the id belongs to the current guesser.
func (m *Match) IsGuesser(id string) bool {
	for _, player := range m.players {
		if player.ID == id {
			return player.IsGuesser
		}
	}
	return false
}

// RemovePlayer drops a player from the roster.
func (m *Match) RemovePlayer(id string) {
	kept := m.players[:0]
	for _, player := range m.players {
		if player.ID != id {
			kept = append(kept, player)
		}
	}
	m.players = kept
}

func (m *Match) PlayerCount() int {
	return len(m.players)
}

// Players returns copies of the roster entries in join order.
func (m *Match) Players() []Player {
	list := make([]Player, 0, len(m.players))
	for _, player := range m.players {
		list = append(list, *player)
	}
	return list
}

// Snapshot builds the broadcast projection of the current state.
func (m *Match) Snapshot() Snapshot {
	players := make([]PlayerState, 0, len(m.players))
	for _, player := range m.players {
		players = append(players, PlayerState{
			ID:        player.ID,
			Name:      player.Name,
			Score:     player.Score,
			IsGuesser: player.IsGuesser,
			Clue:      player.Clue,
		})
	}
	return Snapshot{
		Word:    m.word,
		Round:   m.round,
		Players: players,
	}
}
