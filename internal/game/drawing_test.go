package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sabaac/internal/deck"
)

func TestDrawOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hand  []deck.Card
		field []deck.Card
		want  []DrawAction
	}{
		{"empty", nil, nil, []DrawAction{Stand, Draw}},
		{"hand only", suited(1), nil, []DrawAction{Stand, Draw, Exchange, Insert}},
		{"field only", nil, suited(1), []DrawAction{Stand, Draw, Remove}},
		{"both", suited(1), suited(2), []DrawAction{Stand, Draw, Exchange, Insert, Remove, Swap}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, drawOptions(withCards("A", 0, tt.hand, tt.field)))
		})
	}
}

func TestDrawActionLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Insert into Interference Field", Insert.Label())
	assert.Equal(t, "Swap from Interference Field", Swap.Label())
	assert.True(t, Swap.UsesHand())
	assert.True(t, Swap.UsesField())
	assert.False(t, Draw.UsesHand())
}

func TestDrawingActions(t *testing.T) {
	t.Parallel()

	tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}})
	tt.agent("A").draws = []DrawDecision{
		{Action: Insert, HandIndex: 0},
		{Action: Swap, HandIndex: 1, FieldIndex: 0},
		{Action: Remove, FieldIndex: 0},
		{Action: Insert, HandIndex: 4},
		{Action: Exchange, HandIndex: 0},
		{Action: Draw},
	}
	st := tt.startRound(t)
	a := tt.player("A")
	first, third := a.Hand[0], a.Hand[2]

	require.NoError(t, tt.engine.runDrawing(st))

	// six actions and a closing all-stand pass
	assert.Len(t, tt.agent("A").drawViews, 7)
	assert.Len(t, tt.agent("B").drawViews, 7)
	assert.Equal(t, 7, tt.agent("A").drawViews[6].Pass)
	assert.Len(t, a.Hand, 5)
	assert.Len(t, a.Field, 1)
	assert.Equal(t, 76-10-1, st.Deck.Len())

	draws := tt.eventsOf(EventTypeDraw)
	insert := draws[0].(DrawEvent)
	assert.Equal(t, Insert, insert.Action)
	assert.Equal(t, first, *insert.Card)
	swap := draws[2].(DrawEvent)
	assert.Equal(t, third, *swap.Card)
}

func TestDrawingStandsImmediately(t *testing.T) {
	t.Parallel()

	tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}, {"C", 10}})
	st := tt.startRound(t)

	require.NoError(t, tt.engine.runDrawing(st))

	for _, name := range []string{"A", "B", "C"} {
		require.Len(t, tt.agent(name).drawViews, 1)
		assert.Equal(t, 1, tt.agent(name).drawViews[0].Pass)
	}
	assert.Len(t, tt.eventsOf(EventTypeDraw), 3)
}

func TestDrawingShiftsAfterEveryAction(t *testing.T) {
	t.Parallel()

	rules := testRules()
	rules.ShiftChance = 1
	tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}}, WithRules(rules))
	tt.agent("A").draws = []DrawDecision{{Action: Draw}, {Action: Insert, HandIndex: 0}}
	st := tt.startRound(t)

	require.NoError(t, tt.engine.runDrawing(st))

	assert.Len(t, tt.eventsOf(EventTypeShift), 2)
	assert.Len(t, tt.player("A").Hand, 5)
	assert.Len(t, tt.player("B").Hand, 5)
}

func TestDrawingInvalidDecisionStands(t *testing.T) {
	t.Parallel()

	tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}})
	tt.agent("A").draws = []DrawDecision{{Action: Remove, FieldIndex: 0}, {Action: Exchange, HandIndex: 9}}
	st := tt.startRound(t)

	require.NoError(t, tt.engine.runDrawing(st))

	assert.Len(t, tt.agent("A").drawViews, 1, "fallback stands end the phase")
	ev := tt.eventsOf(EventTypeDraw)[0].(DrawEvent)
	assert.Equal(t, Stand, ev.Action)
	assert.Equal(t, "fallback due to invalid decision", ev.Reasoning)
	assert.Len(t, tt.player("A").Hand, 5)
}

func TestDrawingViewHidesOtherHands(t *testing.T) {
	t.Parallel()

	tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}})
	tt.agent("A").draws = []DrawDecision{{Action: Insert, HandIndex: 0}}
	st := tt.startRound(t)

	require.NoError(t, tt.engine.runDrawing(st))

	view := tt.agent("B").drawViews[1]
	assert.Equal(t, "B", view.Self.Name)
	assert.Len(t, view.Self.Hand, 5)
	require.Len(t, view.Players, 2)
	assert.Nil(t, view.Players[0].Hand)
	assert.Equal(t, 4, view.Players[0].HandSize)
	assert.Len(t, view.Players[0].Field, 1, "interference fields are public")
}

func TestDrawingDeckExhausted(t *testing.T) {
	t.Parallel()

	tt := newTestTable(t, []stack{{"A", 10}, {"B", 10}}, WithDeckFactory(stackedDeck(suited(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)...)))
	tt.agent("A").draws = []DrawDecision{{Action: Draw}}
	st := tt.startRound(t)

	err := tt.engine.runDrawing(st)
	require.ErrorIs(t, err, deck.ErrDeckExhausted)
}
