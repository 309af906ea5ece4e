package game

// Pots is the pot ledger: the hand pot collects this round's wagers, the
// Sabaac pot collects antes and rolled-over hand pots and only pays out to a
// bonus hand.
type Pots struct {
	Hand   int
	Sabaac int
}

// Total returns the chips held in both pots
func (p *Pots) Total() int {
	return p.Hand + p.Sabaac
}

// RollOver moves the whole hand pot into the Sabaac pot and returns the amount moved.
func (p *Pots) RollOver() int {
	moved := p.Hand
	p.Sabaac += moved
	p.Hand = 0
	return moved
}

// TakeHand empties the hand pot and returns its contents.
func (p *Pots) TakeHand() int {
	won := p.Hand
	p.Hand = 0
	return won
}

// TakeSabaac empties the Sabaac pot and returns its contents.
func (p *Pots) TakeSabaac() int {
	won := p.Sabaac
	p.Sabaac = 0
	return won
}
