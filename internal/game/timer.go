// internal/game/timer.go
//
// Per-round countdown state. The timer never ends a game or forces a
// navigation by itself: expiry latches a timed-out flag exactly once, and the
// engine consumes that flag the next time the player completes a navigation.

package game

import "time"

// RoundSeconds is the fixed per-round budget for timed games.
const RoundSeconds = 60

// roundTimer holds the only timer state the engine keeps: the current round's
// start instant and an idempotent expiry latch. It is reset on every round
// transition.
type roundTimer struct {
	startedAt time.Time
	expired   bool
}

// reset rebaselines the timer at the start of a new round.
func (t *roundTimer) reset(now time.Time) {
	t.startedAt = now
	t.expired = false
}

// remaining reports whole seconds left on the round clock, clamped at zero.
func (t *roundTimer) remaining(now time.Time) int {
	if t.startedAt.IsZero() {
		return RoundSeconds
	}
	left := RoundSeconds - int(now.Sub(t.startedAt)/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// tick latches the expired flag once the clock reaches zero and reports the
// latch state. Calling tick after expiry is a no-op.
func (t *roundTimer) tick(now time.Time) bool {
	if !t.expired && !t.startedAt.IsZero() && t.remaining(now) == 0 {
		t.expired = true
	}
	return t.expired
}

// markExpired forces the latch, for clients that run their own countdown.
func (t *roundTimer) markExpired() {
	t.expired = true
}
