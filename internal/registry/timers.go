package registry

import (
	"time"

	"github.com/rs/zerolog/log"
)

// armTimerLocked starts the room's countdown, invalidating any previously
// armed timer. The generation counter ties each timer to the arming that
// created it: a timer that fires after its generation moved on is stale and
// its callback is discarded. Callers hold the room lock.
func (r *Registry) armTimerLocked(id string, rm *room, duration time.Duration) {
	rm.timerGen++
	generation := rm.timerGen
	if rm.timer != nil {
		rm.timer.Stop()
	}
	rm.timer = time.AfterFunc(duration, func() {
		r.expireRound(id, generation)
	})
}

// cancelTimerLocked stops the room's countdown and bumps the generation so
// a callback that already left AfterFunc's queue cannot act. Callers hold
// the room lock.
func (r *Registry) cancelTimerLocked(rm *room) {
	rm.timerGen++
	if rm.timer != nil {
		rm.timer.Stop()
		rm.timer = nil
	}
}

// expireRound is the timer-driven entry into the round transition: the
// expiry behaves as if the server submitted a blank answer with whatever
// clues were collected. The generation check and the round-open flag both
// guard the race with a manual submission; whichever path runs second is a
// no-op.
func (r *Registry) expireRound(id string, generation int) {
	rm, err := r.lookup(id)
	if err != nil {
		return
	}
	rm.mu.Lock()
	if generation != rm.timerGen {
		rm.mu.Unlock()
		return
	}
	result, err := r.endRoundLocked(rm, "")
	rm.mu.Unlock()
	if err != nil {
		return
	}
	log.Info().Str("room_id", id).Int("round", result.Snapshot.Round).Msg("round timer expired")
	if r.onTimeout != nil {
		r.onTimeout(id, result)
	}
}
