package game

import (
	"fmt"
	"slices"

	"github.com/lox/sabaac/internal/deck"
)

// Rank orders hands at resolution. Higher ranks beat lower ones.
type Rank int

const (
	RankBust Rank = iota
	RankNormal
	RankPureSabaac
	RankIdiotsArray
)

// String returns the string representation of a rank
func (r Rank) String() string {
	return [...]string{"Bust", "Normal", "Pure Sabaac", "Idiot's Array"}[r]
}

// Bonus reports whether the rank wins the Sabaac pot
func (r Rank) Bonus() bool {
	return r >= RankPureSabaac
}

// HandValue returns the absolute value of the sum of the card values.
func HandValue(cards []deck.Card) int {
	sum := 0
	for _, c := range cards {
		sum += c.Value()
	}
	if sum < 0 {
		return -sum
	}
	return sum
}

// Evaluate returns the value and rank of a hand plus interference field.
// Bust is decided before the bonus ranks.
func (r Rules) Evaluate(cards []deck.Card) (int, Rank) {
	value := HandValue(cards)
	switch {
	case value > r.BustThreshold:
		return value, RankBust
	case hasIdiotsArray(cards, r.IdiotsArray):
		return value, RankIdiotsArray
	case value == r.PureSabaac:
		return value, RankPureSabaac
	default:
		return value, RankNormal
	}
}

// hasIdiotsArray reports whether distinct cards cover every required value.
// Suits are ignored.
func hasIdiotsArray(cards []deck.Card, values []int) bool {
	used := make([]bool, len(cards))
	for _, v := range values {
		found := false
		for i, c := range cards {
			if !used[i] && c.Value() == v {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// HandResult is one evaluated hand at resolution
type HandResult struct {
	Player *Player
	Value  int
	Rank   Rank
}

// compare orders two non-bust hands. Bonus hands of the same rank tie.
func (h HandResult) compare(o HandResult) int {
	if h.Rank != o.Rank {
		return int(h.Rank) - int(o.Rank)
	}
	if h.Rank == RankNormal {
		return h.Value - o.Value
	}
	return 0
}

// Resolution is the outcome of a round's resolution phase.
type Resolution struct {
	Hands        []HandResult
	Candidates   []*Player // players tied at the best hand
	Winner       *Player   // nil when the hand pot rolled over
	Rank         Rank      // rank of the winning hand
	HandPotWon   int
	SabaacPotWon int
	RolledOver   int // hand pot moved into the Sabaac pot
	Forfeit      bool
}

// resolve evaluates the active players and settles the pots. A lone active
// player wins the hand pot by forfeit and the Sabaac pot only with a bonus
// hand. Otherwise the single best non-bust hand wins; no winner or a tie rolls
// the hand pot into the Sabaac pot. An error means the winner could not be
// credited; the pots are settled regardless.
func resolve(rules Rules, pots *Pots, active []*Player) (Resolution, error) {
	var res Resolution
	for _, p := range active {
		value, rank := rules.Evaluate(p.Cards())
		res.Hands = append(res.Hands, HandResult{Player: p, Value: value, Rank: rank})
	}

	if len(res.Hands) == 1 {
		best := res.Hands[0]
		res.Forfeit = true
		res.Candidates = []*Player{best.Player}
		err := award(&res, pots, best)
		return res, err
	}

	var best HandResult
	for _, h := range res.Hands {
		if h.Rank == RankBust {
			continue
		}
		switch {
		case len(res.Candidates) == 0 || h.compare(best) > 0:
			best = h
			res.Candidates = []*Player{h.Player}
		case h.compare(best) == 0:
			res.Candidates = append(res.Candidates, h.Player)
		}
	}

	if len(res.Candidates) != 1 {
		res.RolledOver = pots.RollOver()
		return res, nil
	}
	err := award(&res, pots, best)
	return res, err
}

func award(res *Resolution, pots *Pots, best HandResult) error {
	res.Winner = best.Player
	res.Rank = best.Rank
	res.HandPotWon = pots.TakeHand()
	if best.Rank.Bonus() {
		res.SabaacPotWon = pots.TakeSabaac()
	}
	if err := best.Player.AdjustChips(res.HandPotWon + res.SabaacPotWon); err != nil {
		return fmt.Errorf("crediting %s: %w", best.Player.Name, err)
	}
	return nil
}

// CandidateNames returns the names of the candidates, sorted.
func (r Resolution) CandidateNames() []string {
	names := make([]string, len(r.Candidates))
	for i, p := range r.Candidates {
		names[i] = p.Name
	}
	slices.Sort(names)
	return names
}
