package game

import (
	"errors"
	"fmt"

	"github.com/lox/sabaac/internal/deck"
)

var (
	// ErrNegativeChips is returned when a debit exceeds the player's balance.
	ErrNegativeChips = errors.New("chip balance would go negative")

	// ErrIndexOutOfRange is returned for a card index outside the hand or field.
	ErrIndexOutOfRange = errors.New("card index out of range")
)

// Player is a participant in a game. It persists across rounds until the
// player is eliminated at the ante or quits.
type Player struct {
	Name  string
	Hand  []deck.Card
	Field []deck.Card // interference field, counts toward hand value

	chips int
}

// NewPlayer creates a player with a starting stake. Negative stakes become zero.
func NewPlayer(name string, chips int) *Player {
	return &Player{Name: name, chips: max(chips, 0)}
}

// Chips returns the player's current chip balance
func (p *Player) Chips() int {
	return p.chips
}

// AdjustChips changes the balance by delta. A debit larger than the balance
// clamps it to zero and returns ErrNegativeChips; callers must never compute one.
func (p *Player) AdjustChips(delta int) error {
	p.chips += delta
	if p.chips < 0 {
		short := -p.chips
		p.chips = 0
		return fmt.Errorf("%w: %s short by %d", ErrNegativeChips, p.Name, short)
	}
	return nil
}

// AddToHand appends a card to the hand
func (p *Player) AddToHand(c deck.Card) {
	p.Hand = append(p.Hand, c)
}

// RemoveFromHand removes and returns the hand card at index i.
func (p *Player) RemoveFromHand(i int) (deck.Card, error) {
	c, rest, err := removeAt(p.Hand, i)
	if err != nil {
		return deck.Card{}, fmt.Errorf("hand: %w", err)
	}
	p.Hand = rest
	return c, nil
}

// AddToField appends a card to the interference field
func (p *Player) AddToField(c deck.Card) {
	p.Field = append(p.Field, c)
}

// RemoveFromField removes and returns the field card at index i.
func (p *Player) RemoveFromField(i int) (deck.Card, error) {
	c, rest, err := removeAt(p.Field, i)
	if err != nil {
		return deck.Card{}, fmt.Errorf("field: %w", err)
	}
	p.Field = rest
	return c, nil
}

// SwapWithField exchanges a hand card and a field card in place.
func (p *Player) SwapWithField(handIdx, fieldIdx int) error {
	if handIdx < 0 || handIdx >= len(p.Hand) {
		return fmt.Errorf("hand: %w: %d", ErrIndexOutOfRange, handIdx)
	}
	if fieldIdx < 0 || fieldIdx >= len(p.Field) {
		return fmt.Errorf("field: %w: %d", ErrIndexOutOfRange, fieldIdx)
	}
	p.Hand[handIdx], p.Field[fieldIdx] = p.Field[fieldIdx], p.Hand[handIdx]
	return nil
}

// EmptyHand clears both the hand and the interference field
func (p *Player) EmptyHand() {
	p.Hand = nil
	p.Field = nil
}

// Cards returns the hand followed by the interference field.
func (p *Player) Cards() []deck.Card {
	cards := make([]deck.Card, 0, len(p.Hand)+len(p.Field))
	cards = append(cards, p.Hand...)
	return append(cards, p.Field...)
}

// HandValue returns the absolute sum of the hand and interference field
func (p *Player) HandValue() int {
	return HandValue(p.Cards())
}

func removeAt(cards []deck.Card, i int) (deck.Card, []deck.Card, error) {
	if i < 0 || i >= len(cards) {
		return deck.Card{}, cards, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	c := cards[i]
	rest := append(cards[:i:i], cards[i+1:]...)
	return c, rest, nil
}
