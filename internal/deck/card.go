package deck

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnnamedCard is returned when a card has no display name and none can be generated.
var ErrUnnamedCard = errors.New("card has no name")

// Suit represents a card suit
type Suit int

const (
	NoSuit Suit = iota
	Coins
	Flasks
	Sabers
	Staves
)

// Suits lists the four named suits in build order.
var Suits = []Suit{Coins, Flasks, Sabers, Staves}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Coins:
		return "Coins"
	case Flasks:
		return "Flasks"
	case Sabers:
		return "Sabers"
	case Staves:
		return "Staves"
	default:
		return "None"
	}
}

// Face rank values for suited cards.
const (
	MinSuitValue = 1
	Commander    = 12
	Mistress     = 13
	Master       = 14
	Ace          = 15
	MaxSuitValue = Ace
)

// Card is a single Sabaac card. Cards are immutable once created.
type Card struct {
	id    int
	suit  Suit
	value int
	name  string
}

// NewCard creates a card. A card without a display name must have a suit and a
// value in the suited range so a name can be generated for it.
func NewCard(suit Suit, value int, name string) (Card, error) {
	c := Card{suit: suit, value: value, name: name}
	if name == "" && generatedName(suit, value) == "" {
		return Card{}, fmt.Errorf("%w: suit %s, value %d", ErrUnnamedCard, suit, value)
	}
	return c, nil
}

// MustCard is like NewCard but panics on error. Intended for tests and fixed tables.
func MustCard(suit Suit, value int, name string) Card {
	c, err := NewCard(suit, value, name)
	if err != nil {
		panic(err)
	}
	return c
}

// ID is the card's position in the population created by Build (1-based).
// Cards created with NewCard have ID 0.
func (c Card) ID() int { return c.id }

// Suit returns the card's suit
func (c Card) Suit() Suit { return c.suit }

// Value returns the signed value the card contributes to a hand
func (c Card) Value() int { return c.value }

// Name returns the display name, or the generated name for suited cards.
func (c Card) Name() string {
	if c.name != "" {
		return c.name
	}
	return generatedName(c.suit, c.value)
}

// String returns the card as "<name> (<value>)", e.g. "Mistress of Coins (13)".
func (c Card) String() string {
	return fmt.Sprintf("%s (%d)", c.Name(), c.value)
}

func generatedName(suit Suit, value int) string {
	if suit == NoSuit {
		return ""
	}
	var rank string
	switch {
	case value >= MinSuitValue && value <= 11:
		rank = strconv.Itoa(value)
	case value == Commander:
		rank = "Commander"
	case value == Mistress:
		rank = "Mistress"
	case value == Master:
		rank = "Master"
	case value == Ace:
		rank = "Ace"
	default:
		return ""
	}
	return rank + " of " + suit.String()
}
