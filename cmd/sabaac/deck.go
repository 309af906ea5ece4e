package main

import (
	"fmt"

	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/randutil"
)

// DeckCmd prints every card in the deck
type DeckCmd struct {
	Shuffle bool   `kong:"help='Shuffle before printing'"`
	Seed    *int64 `kong:"help='Seed for the shuffle (optional)'"`
}

func (c *DeckCmd) Run() error {
	d := deck.Build(randutil.New(randutil.Seed(c.Seed)))
	if c.Shuffle {
		d.Shuffle()
	}
	for i, card := range d.Cards() {
		fmt.Printf("%2d  %-28s %-7s %3d\n", i+1, card.Name(), card.Suit(), card.Value())
	}
	fmt.Println(infoStyle.Render(fmt.Sprintf("%d cards", d.Len())))
	return nil
}
