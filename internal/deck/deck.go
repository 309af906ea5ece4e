package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrDeckExhausted is returned when drawing from an empty deck.
var ErrDeckExhausted = errors.New("deck exhausted")

// FaceCard describes a named, suitless card that appears twice in a full deck.
type FaceCard struct {
	Name  string
	Value int
}

// FaceCards are the suitless pairs added to every full deck.
var FaceCards = []FaceCard{
	{"Queen of Air and Darkness", -2},
	{"Endurance", -8},
	{"Balance", -11},
	{"Demise", -13},
	{"Moderation", -14},
	{"The Evil One", -15},
	{"The Star", -17},
	{"The Idiot", 0},
}

// FullSize is the number of cards created by Build.
var FullSize = len(Suits)*MaxSuitValue + 2*len(FaceCards)

// Deck is an ordered, mutable collection of cards. Draws come from the front.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a deck holding exactly the given cards in order.
// The RNG is used by Shuffle and is required.
func New(rng *rand.Rand, cards ...Card) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: make([]Card, len(cards), max(len(cards), FullSize)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

// Build creates the full, unshuffled population: every suit and value 1-15,
// followed by two of each face card. Cards are assigned IDs 1..FullSize.
func Build(rng *rand.Rand) *Deck {
	d := New(rng)
	id := 0
	add := func(c Card) {
		id++
		c.id = id
		d.cards = append(d.cards, c)
	}

	for _, suit := range Suits {
		for value := MinSuitValue; value <= MaxSuitValue; value++ {
			add(Card{suit: suit, value: value})
		}
	}
	for _, fc := range FaceCards {
		add(Card{suit: NoSuit, value: fc.Value, name: fc.Name})
		add(Card{suit: NoSuit, value: fc.Value, name: fc.Name})
	}
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the front card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// Add puts a card at the back of the deck.
func (d *Deck) Add(c Card) {
	d.cards = append(d.cards, c)
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in draw order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
