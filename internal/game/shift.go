package game

import (
	rand "math/rand/v2"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/randutil"
)

// attemptShift runs a single shift trial and reports whether a shift happened.
func (e *Engine) attemptShift(st *RoundState) bool {
	if len(st.Active) <= 1 || !randutil.Chance(e.rng, e.rules.ShiftChance) {
		return false
	}
	cards := shift(e.rng, st.Active)
	e.logger.Debug("Shift", "players", len(st.Active), "cards", cards)
	e.emit(st, ShiftEvent{Players: len(st.Active), Cards: cards, timestamp: e.clock.Now()})
	return true
}

// shift pools every player's hand, shuffles the pool and deals it back so
// each player keeps their hand size. Interference fields are not touched.
// It returns the number of cards redistributed.
func shift(rng *rand.Rand, players []*Player) int {
	var pool []deck.Card
	for _, p := range players {
		pool = append(pool, p.Hand...)
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	off := 0
	for _, p := range players {
		n := len(p.Hand)
		p.Hand = append([]deck.Card(nil), pool[off:off+n]...)
		off += n
	}
	return len(pool)
}
