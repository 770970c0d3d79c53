package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bm254now/team-coconut/internal/config"
)

func TestTimerExpiryEndsRound(t *testing.T) {
	cfg := config.Default()
	cfg.ClueDurationSeconds = 1
	cfg.GuessDurationSeconds = 1
	r := New(cfg)

	fired := make(chan RoundResult, 1)
	r.OnTimeout(func(roomID string, result RoundResult) {
		fired <- result
	})
	startedRoom(t, r, "r1")

	select {
	case result := <-fired:
		assert.False(t, result.Correct, "a blank answer never matches")
		assert.Equal(t, 0, result.Snapshot.Round)
	case <-time.After(3 * time.Second):
		t.Fatal("timer did not fire")
	}

	// The expiry already closed the round; a late answer is discarded.
	_, err := r.EndRound("r1", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestManualAnswerCancelsTimer(t *testing.T) {
	cfg := config.Default()
	cfg.ClueDurationSeconds = 1
	cfg.GuessDurationSeconds = 1
	r := New(cfg)

	fired := make(chan RoundResult, 1)
	r.OnTimeout(func(roomID string, result RoundResult) {
		fired <- result
	})
	startedRoom(t, r, "r1")

	_, err := r.EndRound("r1", "")
	require.NoError(t, err)

	select {
	case <-fired:
		t.Fatal("cancelled timer fired after the round ended")
	case <-time.After(2 * time.Second):
	}
}

func TestClueCompletionRearmsTimer(t *testing.T) {
	r := New(testConfig())
	startedRoom(t, r, "r1")

	r.mu.RLock()
	rm := r.rooms["r1"]
	r.mu.RUnlock()
	rm.mu.Lock()
	before := rm.timerGen
	rm.mu.Unlock()

	_, _, err := r.SubmitClue("r1", "p2", "big")
	require.NoError(t, err)
	_, _, err = r.SubmitClue("r1", "p3", "tall")
	require.NoError(t, err)
	_, allIn, err := r.SubmitClue("r1", "p4", "wide")
	require.NoError(t, err)
	require.True(t, allIn)

	rm.mu.Lock()
	after := rm.timerGen
	rm.mu.Unlock()
	assert.Greater(t, after, before, "guess phase must re-arm the countdown")
}
