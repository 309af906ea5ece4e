package game

import (
	"errors"
	"fmt"
)

// Rules holds the fixed constants of a Sabaac game.
type Rules struct {
	HandSize      int     // cards dealt to each player every round
	SabaacAnte    int     // forced contribution to the Sabaac pot every round
	HandPotAnte   int     // minimum cost to stay in during the first betting phase
	BustThreshold int     // hand values strictly above this cannot win
	PureSabaac    int     // hand value that scores a Pure Sabaac (a hand that cancels out)
	ShiftChance   float64 // probability that a shift attempt succeeds
	IdiotsArray   []int   // card values that together form an Idiot's Array
}

// DefaultRules returns the standard table rules.
func DefaultRules() Rules {
	return Rules{
		HandSize:      5,
		SabaacAnte:    2,
		HandPotAnte:   2,
		BustThreshold: 23,
		PureSabaac:    0,
		ShiftChance:   0.2,
		IdiotsArray:   []int{0, 2, 3},
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	var errs []error
	if r.HandSize <= 0 {
		errs = append(errs, fmt.Errorf("hand size must be positive, got %d", r.HandSize))
	}
	if r.SabaacAnte < 0 {
		errs = append(errs, fmt.Errorf("sabaac ante must not be negative, got %d", r.SabaacAnte))
	}
	if r.HandPotAnte < 0 {
		errs = append(errs, fmt.Errorf("hand pot ante must not be negative, got %d", r.HandPotAnte))
	}
	if r.BustThreshold <= 0 {
		errs = append(errs, fmt.Errorf("bust threshold must be positive, got %d", r.BustThreshold))
	}
	if r.PureSabaac < 0 || r.PureSabaac > r.BustThreshold {
		errs = append(errs, fmt.Errorf("pure sabaac value %d must be between 0 and the bust threshold %d", r.PureSabaac, r.BustThreshold))
	}
	if r.ShiftChance < 0 || r.ShiftChance > 1 {
		errs = append(errs, fmt.Errorf("shift chance must be within [0, 1], got %v", r.ShiftChance))
	}
	if len(r.IdiotsArray) == 0 {
		errs = append(errs, errors.New("idiot's array needs at least one card value"))
	}
	return errors.Join(errs...)
}
