package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/game"
	"github.com/lox/sabaac/internal/randutil"
)

var (
	discard   = log.New(io.Discard)
	endurance = deck.MustCard(deck.NoSuit, -8, "Endurance")
)

func cards(values ...int) []deck.Card {
	out := make([]deck.Card, len(values))
	for i, v := range values {
		out[i] = deck.MustCard(deck.Suits[i%len(deck.Suits)], v, "")
	}
	return out
}

func viewWith(hand, field []deck.Card) game.TableView {
	return game.TableView{
		Pass:     1,
		DeckSize: 40,
		HandPot:  8,
		Self:     game.SeatView{Name: "bot", Chips: 20, HandSize: len(hand), Hand: hand, Field: field, Active: true},
		Rules:    game.DefaultRules(),
	}
}

func betOptions(owed, chips int) []game.BetOption {
	return []game.BetOption{
		{Action: game.Fold},
		{Action: game.Call, Cost: owed},
		{Action: game.Raise, Cost: owed, MinRaise: 1, MaxRaise: chips - owed},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"call", "random", "target"}, Strategies())
	for _, name := range Strategies() {
		a, err := New(name, randutil.New(1), discard)
		require.NoError(t, err)
		assert.NotNil(t, a)
	}

	_, err := New("maniac", randutil.New(1), discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown bot strategy "maniac"`)
}

func TestCallBot(t *testing.T) {
	t.Parallel()

	b := NewCallBot(discard)
	view := viewWith(cards(1, 2), nil)

	dec, err := b.ChooseBet(view, betOptions(2, 20))
	require.NoError(t, err)
	assert.Equal(t, game.Call, dec.Action)

	dec, err = b.ChooseBet(view, []game.BetOption{{Action: game.Fold}, {Action: game.Check}})
	require.NoError(t, err)
	assert.Equal(t, game.Check, dec.Action)

	draw, err := b.ChooseDraw(view, []game.DrawAction{game.Stand, game.Draw})
	require.NoError(t, err)
	assert.Equal(t, game.Stand, draw.Action)

	cont, err := b.ChooseContinue(view)
	require.NoError(t, err)
	assert.True(t, cont)
}

func TestRandBotChoosesLegalOptions(t *testing.T) {
	t.Parallel()

	b := NewRandBot(randutil.New(7), discard)
	view := viewWith(cards(1, 2, 3), cards(4))
	options := betOptions(2, 10)
	drawOptions := []game.DrawAction{game.Stand, game.Draw, game.Exchange, game.Insert, game.Remove, game.Swap}

	for range 500 {
		dec, err := b.ChooseBet(view, options)
		require.NoError(t, err)
		assert.Contains(t, []game.Action{game.Fold, game.Call, game.Raise}, dec.Action)
		if dec.Action == game.Raise {
			assert.GreaterOrEqual(t, dec.Raise, 1)
			assert.LessOrEqual(t, dec.Raise, 8)
		}

		draw, err := b.ChooseDraw(view, drawOptions)
		require.NoError(t, err)
		assert.Contains(t, drawOptions, draw.Action)
		assert.Less(t, draw.HandIndex, 3)
		assert.Less(t, draw.FieldIndex, 1)
	}
}

func TestRandBotStandsEventually(t *testing.T) {
	t.Parallel()

	b := NewRandBot(randutil.New(3), discard)
	view := viewWith(cards(1, 2, 3), nil)
	view.Pass = 4
	for range 50 {
		dec, err := b.ChooseDraw(view, []game.DrawAction{game.Stand, game.Draw})
		require.NoError(t, err)
		assert.Equal(t, game.Stand, dec.Action)
	}
}

func TestTargetBotBetting(t *testing.T) {
	t.Parallel()

	b := NewTargetBot(discard)
	tests := []struct {
		name    string
		hand    []deck.Card
		owed    int
		minCost int
		want    game.Action
	}{
		{"raises pure sabaac", append(cards(8), endurance), 2, 2, game.Raise},
		{"raises a strong hand", cards(11, 10), 0, 0, game.Raise},
		{"calls when already in", cards(11, 10), 3, 5, game.Call},
		{"calls a middling hand", cards(5, 6), 2, 2, game.Call},
		{"folds a bust hand", cards(15, 15), 2, 2, game.Fold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := viewWith(tt.hand, nil)
			view.Owed = tt.owed
			view.MinCost = tt.minCost
			dec, err := b.ChooseBet(view, betOptions(tt.owed, 20))
			require.NoError(t, err)
			assert.Equal(t, tt.want, dec.Action)
			if dec.Action == game.Raise {
				assert.Equal(t, 4, dec.Raise)
			}
		})
	}
}

func TestTargetBotDrawing(t *testing.T) {
	t.Parallel()

	b := NewTargetBot(discard)
	idiot := deck.MustCard(deck.NoSuit, 0, "The Idiot")
	tests := []struct {
		name  string
		hand  []deck.Card
		field []deck.Card
		pass  int
		want  game.DrawAction
		index int
	}{
		{"draws a weak hand", cards(3, 4), nil, 1, game.Draw, 0},
		{"stands on a strong hand", cards(10, 9), nil, 1, game.Stand, 0},
		{"exchanges the card that leaves the best hand", cards(9, 15, 6), nil, 1, game.Exchange, 0},
		{"exchanges the card that gets closest when every removal busts", cards(13, 14, 15, 15), nil, 1, game.Exchange, 2},
		{"protects a bonus hand", append([]deck.Card{idiot}, cards(2, 3)...), nil, 1, game.Insert, 0},
		{"holds a protected bonus hand", nil, append(cards(8), endurance), 1, game.Stand, 0},
		{"stops drawing after enough passes", cards(3), nil, maxPasses + 1, game.Stand, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := viewWith(tt.hand, tt.field)
			view.Pass = tt.pass
			dec, err := b.ChooseDraw(view, []game.DrawAction{game.Stand, game.Draw, game.Exchange, game.Insert})
			require.NoError(t, err)
			assert.Equal(t, tt.want, dec.Action)
			assert.Equal(t, tt.index, dec.HandIndex)
		})
	}
}

func TestBotsPlayFullGames(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 10; seed++ {
		rng := randutil.New(seed)
		players := []*game.Player{
			game.NewPlayer("call", 40),
			game.NewPlayer("random", 40),
			game.NewPlayer("target", 40),
		}
		agents := make(map[string]game.Agent)
		for _, p := range players {
			a, err := New(p.Name, rng, discard)
			require.NoError(t, err)
			agents[p.Name] = a
		}
		engine, err := game.NewEngine(rng, players, agents, game.WithRoundLimit(200))
		require.NoError(t, err)

		result, err := engine.RunGame(context.Background())
		if err != nil {
			require.ErrorIs(t, err, deck.ErrDeckExhausted, "seed %d", seed)
			continue
		}
		assert.Positive(t, result.Rounds, "seed %d", seed)
	}
}
