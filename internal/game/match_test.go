package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testScoring = Scoring{GuesserPoints: 200, CluePoints: 100}

func fourPlayerMatch(t *testing.T) *Match {
	t.Helper()
	m := NewMatch(testScoring)
	m.AddPlayer("p1", "Ada")
	m.AddPlayer("p2", "Ben")
	m.AddPlayer("p3", "Cho")
	m.AddPlayer("p4", "Dee")
	m.Init()
	return m
}

func guesserID(t *testing.T, snapshot Snapshot) string {
	t.Helper()
	id := ""
	for _, player := range snapshot.Players {
		if player.IsGuesser {
			require.Empty(t, id, "more than one guesser assigned")
			id = player.ID
		}
	}
	require.NotEmpty(t, id, "no guesser assigned")
	return id
}

func TestInitAssignsFirstPlayerAsGuesser(t *testing.T) {
	m := fourPlayerMatch(t)
	snapshot := m.Snapshot()

	assert.Equal(t, 0, snapshot.Round)
	assert.NotEmpty(t, snapshot.Word)
	assert.Equal(t, "p1", guesserID(t, snapshot))
	assert.True(t, m.Started())
}

func TestWordSequenceHasNoRepeats(t *testing.T) {
	m := fourPlayerMatch(t)
	seen := map[string]struct{}{}
	seen[m.Snapshot().Word] = struct{}{}
	for !m.LastRound() {
		snapshot := m.NextRound()
		if _, ok := seen[snapshot.Word]; ok {
			t.Fatalf("word repeated in sequence: %s", snapshot.Word)
		}
		seen[snapshot.Word] = struct{}{}
	}
	// Two rounds per player.
	assert.Len(t, seen, 8)
}

func TestGuesserRotationVisitsEveryPlayerTwice(t *testing.T) {
	m := fourPlayerMatch(t)
	order := []string{guesserID(t, m.Snapshot())}
	for !m.LastRound() {
		order = append(order, guesserID(t, m.NextRound()))
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p1", "p2", "p3", "p4"}, order)
}

func TestCheckAnswerIsCaseSensitive(t *testing.T) {
	m := fourPlayerMatch(t)
	word := m.Snapshot().Word

	assert.True(t, m.CheckAnswer(word))
	assert.False(t, m.CheckAnswer(strings.ToLower(word)))
	assert.False(t, m.CheckAnswer(""))
}

func TestGivePointsDisqualifiesDuplicateClues(t *testing.T) {
	m := fourPlayerMatch(t)
	m.GivePoints([]Clue{
		{PlayerID: "p2", Text: "big"},
		{PlayerID: "p3", Text: "tall"},
		{PlayerID: "p4", Text: "big"},
	})

	scores := map[string]int{}
	for _, player := range m.Snapshot().Players {
		scores[player.ID] = player.Score
	}
	assert.Equal(t, 200, scores["p1"], "guesser bonus")
	assert.Equal(t, 0, scores["p2"], "duplicate clue")
	assert.Equal(t, 100, scores["p3"], "unique clue")
	assert.Equal(t, 0, scores["p4"], "duplicate clue")
}

func TestGivePointsAllUniqueClues(t *testing.T) {
	m := fourPlayerMatch(t)
	m.GivePoints([]Clue{
		{PlayerID: "p2", Text: "fruit"},
		{PlayerID: "p3", Text: "red"},
		{PlayerID: "p4", Text: "round"},
	})

	for _, player := range m.Snapshot().Players {
		if player.ID == "p1" {
			assert.Equal(t, 200, player.Score)
		} else {
			assert.Equal(t, 100, player.Score)
		}
	}
}

func TestGivePointsNeverAwardsClueBonusToGuesser(t *testing.T) {
	m := fourPlayerMatch(t)
	// A clue under the guesser's id must not earn the clue bonus even
	// when its text is unique.
	m.GivePoints([]Clue{
		{PlayerID: "p1", Text: "sneaky"},
		{PlayerID: "p2", Text: "fruit"},
		{PlayerID: "p3", Text: "red"},
	})

	scores := map[string]int{}
	for _, player := range m.Snapshot().Players {
		scores[player.ID] = player.Score
	}
	assert.Equal(t, 200, scores["p1"], "guesser bonus only")
	assert.Equal(t, 100, scores["p2"])
	assert.Equal(t, 100, scores["p3"])
	assert.Equal(t, 0, scores["p4"])
}

func TestHasPlayerAndIsGuesser(t *testing.T) {
	m := fourPlayerMatch(t)

	assert.True(t, m.HasPlayer("p3"))
	assert.False(t, m.HasPlayer("stranger"))
	assert.True(t, m.IsGuesser("p1"))
	assert.False(t, m.IsGuesser("p2"))
	assert.False(t, m.IsGuesser("stranger"))
}

func TestNextRoundClearsClues(t *testing.T) {
	m := fourPlayerMatch(t)
	m.SetClue("p2", "big")
	m.SetClue("p3", "tall")

	snapshot := m.Snapshot()
	assert.Equal(t, "big", snapshot.Players[1].Clue)

	snapshot = m.NextRound()
	for _, player := range snapshot.Players {
		assert.Empty(t, player.Clue)
	}
}

func TestLastRoundRule(t *testing.T) {
	m := fourPlayerMatch(t)
	for i := 0; i < 6; i++ {
		assert.False(t, m.LastRound(), "round %d", i)
		m.NextRound()
	}
	m.NextRound()
	assert.True(t, m.LastRound())
}

func TestRemovePlayer(t *testing.T) {
	m := fourPlayerMatch(t)
	m.RemovePlayer("p3")

	assert.Equal(t, 3, m.PlayerCount())
	for _, player := range m.Players() {
		assert.NotEqual(t, "p3", player.ID)
	}
}
