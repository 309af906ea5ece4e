package deck

import (
	"testing"

	"github.com/lox/sabaac/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPopulation(t *testing.T) {
	t.Parallel()

	d := Build(randutil.New(1))
	require.Equal(t, 76, FullSize)
	require.Equal(t, FullSize, d.Len())

	ids := make(map[int]bool)
	suitless := make(map[string]int)
	suited := make(map[Suit]int)
	for _, c := range d.Cards() {
		assert.False(t, ids[c.ID()], "duplicate id %d", c.ID())
		ids[c.ID()] = true
		assert.NotEmpty(t, c.Name(), "every built card must be nameable")

		if c.Suit() == NoSuit {
			suitless[c.Name()]++
		} else {
			suited[c.Suit()]++
		}
	}

	for _, s := range Suits {
		assert.Equal(t, 15, suited[s], "suit %s", s)
	}
	require.Len(t, suitless, len(FaceCards))
	for _, fc := range FaceCards {
		assert.Equal(t, 2, suitless[fc.Name], "face card %s", fc.Name)
	}
}

func TestDrawAndAdd(t *testing.T) {
	t.Parallel()

	a := MustCard(Coins, 1, "")
	b := MustCard(Flasks, 2, "")
	d := New(randutil.New(1), a, b)

	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, a, c)
	assert.Equal(t, 1, d.Len())

	d.Add(c)
	assert.Equal(t, []Card{b, a}, d.Cards())
}

func TestDrawEmptyDeck(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(1))
	_, err := d.Draw()
	require.ErrorIs(t, err, ErrDeckExhausted)
}

func TestShuffleKeepsCards(t *testing.T) {
	t.Parallel()

	d := Build(randutil.New(42))
	before := d.Cards()
	d.Shuffle()
	after := d.Cards()

	assert.ElementsMatch(t, before, after)
	assert.NotEqual(t, before, after, "a shuffled 76-card deck should change order")
}

func TestShuffleDeterministic(t *testing.T) {
	t.Parallel()

	d1 := Build(randutil.New(7))
	d2 := Build(randutil.New(7))
	d1.Shuffle()
	d2.Shuffle()
	assert.Equal(t, d1.Cards(), d2.Cards())
}
