package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		suit     Suit
		value    int
		display  string
		expected string
	}{
		{"numeral", Coins, 7, "", "7 of Coins"},
		{"lowest numeral", Staves, 1, "", "1 of Staves"},
		{"eleven", Flasks, 11, "", "11 of Flasks"},
		{"commander", Sabers, Commander, "", "Commander of Sabers"},
		{"mistress", Coins, Mistress, "", "Mistress of Coins"},
		{"master", Flasks, Master, "", "Master of Flasks"},
		{"ace", Staves, Ace, "", "Ace of Staves"},
		{"display name overrides", Coins, 3, "Lucky Three", "Lucky Three"},
		{"named suitless", NoSuit, -17, "The Star", "The Star"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCard(tt.suit, tt.value, tt.display)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.Name())
			assert.Equal(t, tt.value, c.Value())
		})
	}
}

func TestNewCardRequiresName(t *testing.T) {
	t.Parallel()

	_, err := NewCard(NoSuit, 0, "")
	require.ErrorIs(t, err, ErrUnnamedCard)

	_, err = NewCard(Coins, -3, "")
	require.ErrorIs(t, err, ErrUnnamedCard, "suited cards outside 1-15 cannot generate a name")

	assert.Panics(t, func() { MustCard(NoSuit, 5, "") })
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Mistress of Coins (13)", MustCard(Coins, Mistress, "").String())
	assert.Equal(t, "The Idiot (0)", MustCard(NoSuit, 0, "The Idiot").String())
}

func TestSuitString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "None", NoSuit.String())
	assert.Equal(t, []string{"Coins", "Flasks", "Sabers", "Staves"}, []string{
		Suits[0].String(), Suits[1].String(), Suits[2].String(), Suits[3].String(),
	})
}
