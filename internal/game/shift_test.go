package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/randutil"
)

func cardIDs(players []*Player, field bool) []int {
	var ids []int
	for _, p := range players {
		cards := p.Hand
		if field {
			cards = p.Field
		}
		for _, c := range cards {
			ids = append(ids, c.ID())
		}
	}
	slices.Sort(ids)
	return ids
}

func TestShiftPreservesSizesAndCards(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 20; seed++ {
		cards := deck.Build(randutil.New(seed)).Cards()
		players := []*Player{
			withCards("A", 0, slices.Clone(cards[0:5]), slices.Clone(cards[20:22])),
			withCards("B", 0, slices.Clone(cards[5:8]), nil),
			withCards("C", 0, slices.Clone(cards[8:15]), slices.Clone(cards[22:23])),
			withCards("D", 0, nil, nil),
		}
		sizes := []int{5, 3, 7, 0}
		hands := cardIDs(players, false)
		fields := make([][]deck.Card, len(players))
		for i, p := range players {
			fields[i] = slices.Clone(p.Field)
		}

		moved := shift(randutil.New(seed), players)

		assert.Equal(t, 15, moved)
		for i, p := range players {
			assert.Len(t, p.Hand, sizes[i], "seed %d player %s", seed, p.Name)
			assert.Equal(t, fields[i], p.Field, "fields are untouched")
		}
		assert.Equal(t, hands, cardIDs(players, false), "seed %d", seed)
	}
}

func TestShiftIsDeterministic(t *testing.T) {
	t.Parallel()

	deal := func() []*Player {
		cards := deck.Build(randutil.New(1)).Cards()
		return []*Player{
			withCards("A", 0, slices.Clone(cards[0:5]), nil),
			withCards("B", 0, slices.Clone(cards[5:10]), nil),
		}
	}
	a, b := deal(), deal()
	shift(randutil.New(9), a)
	shift(randutil.New(9), b)
	assert.Equal(t, a[0].Hand, b[0].Hand)
	assert.Equal(t, a[1].Hand, b[1].Hand)
}

func TestAttemptShift(t *testing.T) {
	t.Parallel()

	t.Run("certain shift publishes one event", func(t *testing.T) {
		t.Parallel()
		rules := testRules()
		rules.ShiftChance = 1
		tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}}, WithRules(rules))
		st := tt.startRound(t)

		require.True(t, tt.engine.attemptShift(st))

		shifts := tt.eventsOf(EventTypeShift)
		require.Len(t, shifts, 1)
		assert.Equal(t, ShiftEvent{Players: 2, Cards: 10, timestamp: tt.clock.Now()}, shifts[0])
		assert.Contains(t, st.Log.Lines(), "A shift! 10 cards change hands")
	})

	t.Run("zero chance never shifts", func(t *testing.T) {
		t.Parallel()
		tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}})
		st := tt.startRound(t)

		for range 50 {
			require.False(t, tt.engine.attemptShift(st))
		}
	})

	t.Run("single active player never shifts", func(t *testing.T) {
		t.Parallel()
		rules := testRules()
		rules.ShiftChance = 1
		tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}}, WithRules(rules))
		st := tt.startRound(t)
		st.removeActive(tt.player("B"))

		assert.False(t, tt.engine.attemptShift(st))
		assert.Empty(t, tt.eventsOf(EventTypeShift))
	})
}
