package game

// Player is one roster entry of a match. The id is the opaque identity the
// transport layer authenticated; the clue field holds this round's submitted
// clue text and is cleared on every round advance.
type Player struct {
	ID        string
	Name      string
	Score     int
	IsGuesser bool
	Clue      string
}

func (p *Player) addPoints(points int) {
	p.Score += points
}

// Clue pairs a submitted clue text with the player who sent it.
type Clue struct {
	PlayerID string `json:"id"`
	Text     string `json:"msg"`
}
