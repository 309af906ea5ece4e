package game

import (
	"errors"
	rand "math/rand/v2"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/randutil"
)

var errScripted = errors.New("scripted failure")

// scriptedAgent replays queued decisions. With an empty queue it takes the
// call slot when betting, stands when drawing and continues.
type scriptedAgent struct {
	bets  []BetDecision
	draws []DrawDecision
	conts []bool
	err   error

	betViews   []TableView
	betOptions [][]BetOption
	drawViews  []TableView
	contViews  []TableView
	onView     func(TableView)
}

func (a *scriptedAgent) ChooseBet(view TableView, options []BetOption) (BetDecision, error) {
	a.seen(view)
	a.betViews = append(a.betViews, view)
	a.betOptions = append(a.betOptions, options)
	if a.err != nil {
		return BetDecision{}, a.err
	}
	if len(a.bets) == 0 {
		return BetDecision{Action: options[1].Action}, nil
	}
	dec := a.bets[0]
	a.bets = a.bets[1:]
	return dec, nil
}

func (a *scriptedAgent) ChooseDraw(view TableView, options []DrawAction) (DrawDecision, error) {
	a.seen(view)
	a.drawViews = append(a.drawViews, view)
	if a.err != nil {
		return DrawDecision{}, a.err
	}
	if len(a.draws) == 0 {
		return DrawDecision{Action: Stand}, nil
	}
	dec := a.draws[0]
	a.draws = a.draws[1:]
	return dec, nil
}

func (a *scriptedAgent) ChooseContinue(view TableView) (bool, error) {
	a.seen(view)
	a.contViews = append(a.contViews, view)
	if a.err != nil {
		return false, a.err
	}
	if len(a.conts) == 0 {
		return true, nil
	}
	c := a.conts[0]
	a.conts = a.conts[1:]
	return c, nil
}

func (a *scriptedAgent) seen(view TableView) {
	if a.onView != nil {
		a.onView(view)
	}
}

// testTable holds an engine and the scripted agents of its players.
type testTable struct {
	engine  *Engine
	players []*Player
	agents  map[string]*scriptedAgent
	events  []GameEvent
	clock   *quartz.Mock
}

func (tt *testTable) agent(name string) *scriptedAgent {
	return tt.agents[name]
}

func (tt *testTable) player(name string) *Player {
	for _, p := range tt.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (tt *testTable) eventsOf(typ EventType) []GameEvent {
	var out []GameEvent
	for _, ev := range tt.events {
		if ev.EventType() == typ {
			out = append(out, ev)
		}
	}
	return out
}

// testRules returns the default rules without shifts.
func testRules() Rules {
	r := DefaultRules()
	r.ShiftChance = 0
	return r
}

type stack struct {
	name  string
	chips int
}

// newTestTable creates an engine with scripted agents, no shifts and a mock clock.
func newTestTable(t *testing.T, seats []stack, opts ...EngineOption) *testTable {
	t.Helper()
	tt := &testTable{agents: make(map[string]*scriptedAgent), clock: quartz.NewMock(t)}
	agents := make(map[string]Agent)
	for _, s := range seats {
		p := NewPlayer(s.name, s.chips)
		tt.players = append(tt.players, p)
		tt.agents[s.name] = &scriptedAgent{}
		agents[s.name] = tt.agents[s.name]
	}
	bus := NewEventBus()
	bus.Subscribe(EventSubscriberFunc(func(ev GameEvent) { tt.events = append(tt.events, ev) }))

	base := []EngineOption{WithRules(testRules()), WithClock(tt.clock), WithEventBus(bus)}
	e, err := NewEngine(randutil.New(42), tt.players, agents, append(base, opts...)...)
	require.NoError(t, err)
	tt.engine = e
	return tt
}

// startRound resets the round and deals, leaving the table ready for betting.
func (tt *testTable) startRound(t *testing.T) *RoundState {
	t.Helper()
	st := tt.engine.State()
	st.Round++
	tt.engine.resetRound(st)
	require.NoError(t, tt.engine.deal(st))
	return st
}

func suited(values ...int) []deck.Card {
	cards := make([]deck.Card, len(values))
	for i, v := range values {
		cards[i] = deck.MustCard(deck.Suits[i%len(deck.Suits)], v, "")
	}
	return cards
}

func idiot() deck.Card {
	return deck.MustCard(deck.NoSuit, 0, "The Idiot")
}

func endurance() deck.Card {
	return deck.MustCard(deck.NoSuit, -8, "Endurance")
}

// sabaac returns a hand that cancels out to zero.
func sabaac() []deck.Card {
	return append(suited(8), endurance())
}

// stackedDeck returns a deck factory that deals exactly cards in order.
func stackedDeck(cards ...deck.Card) func(*rand.Rand) *deck.Deck {
	return func(rng *rand.Rand) *deck.Deck {
		return deck.New(rng, cards...)
	}
}

// dealOrder interleaves per-player hands into round-robin deal order.
func dealOrder(hands ...[]deck.Card) []deck.Card {
	var out []deck.Card
	for i := 0; ; i++ {
		added := false
		for _, h := range hands {
			if i < len(h) {
				out = append(out, h[i])
				added = true
			}
		}
		if !added {
			return out
		}
	}
}

func withCards(name string, chips int, hand, field []deck.Card) *Player {
	p := NewPlayer(name, chips)
	p.Hand = hand
	p.Field = field
	return p
}

func values(cards []deck.Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Value()
	}
	return out
}
