package game

import (
	"fmt"
	"slices"
)

// Action represents a betting action
type Action int

const (
	Fold Action = iota
	Check
	Call
	AllIn
	Raise
)

// String returns the string representation of an action
func (a Action) String() string {
	return [...]string{"fold", "check", "call", "allin", "raise"}[a]
}

// Label returns the menu text for an action
func (a Action) Label() string {
	return [...]string{"Fold", "Check", "Call", "All-in", "Raise"}[a]
}

// BetOption is an action offered to a player during betting. Cost is what
// the action moves into the hand pot, excluding any raise amount.
type BetOption struct {
	Action   Action
	Cost     int
	MinRaise int // Raise only
	MaxRaise int // Raise only
}

// betOptions returns the options offered to a player who owes owed chips and
// holds chips: Fold, the call slot and Raise. A raise is bounded by the chips
// left over the current cost; a player who cannot cover the cost plus one chip
// more is still offered a raise of up to chips minus owed.
func betOptions(minCost, owed, chips int) []BetOption {
	options := []BetOption{{Action: Fold}}
	switch {
	case minCost == 0:
		options = append(options, BetOption{Action: Check})
	case owed >= chips:
		options = append(options, BetOption{Action: AllIn, Cost: chips})
	default:
		options = append(options, BetOption{Action: Call, Cost: owed})
	}
	if owed < chips {
		maxRaise := chips - minCost
		if maxRaise < 1 {
			maxRaise = chips - owed
		}
		options = append(options, BetOption{Action: Raise, Cost: owed, MinRaise: 1, MaxRaise: maxRaise})
	}
	return options
}

// callSlot returns the option that stands in for Call.
func callSlot(options []BetOption) BetOption {
	return options[1]
}

// validateBet returns the offered option matching the decision.
func validateBet(dec BetDecision, options []BetOption) (BetOption, error) {
	i := slices.IndexFunc(options, func(o BetOption) bool { return o.Action == dec.Action })
	if i < 0 {
		return BetOption{}, fmt.Errorf("action %s is not available", dec.Action)
	}
	opt := options[i]
	if opt.Action == Raise && (dec.Raise < opt.MinRaise || dec.Raise > opt.MaxRaise) {
		return BetOption{}, fmt.Errorf("raise %d outside [%d, %d]", dec.Raise, opt.MinRaise, opt.MaxRaise)
	}
	return opt, nil
}

// requeueAfterRaise returns the seats that must respond to a raise by seat
// raiser: every active seat after the raiser in seat order, wrapping around,
// excluding the raiser.
func requeueAfterRaise(n, raiser int, active func(seat int) bool) []int {
	queue := make([]int, 0, n-1)
	for k := 1; k < n; k++ {
		seat := (raiser + k) % n
		if active(seat) {
			queue = append(queue, seat)
		}
	}
	return queue
}

// runBetting runs one betting phase over the active players. With ante the
// cost to stay in starts at the hand pot ante, otherwise at zero.
func (e *Engine) runBetting(st *RoundState, withAnte bool) error {
	seats := slices.Clone(st.Active)
	solvent := 0
	for _, p := range seats {
		if p.Chips() > 0 {
			solvent++
		}
	}
	if solvent < 2 {
		e.logger.Debug("Skipping betting phase", "active", len(seats), "solvent", solvent)
		return nil
	}

	minCost := 0
	if withAnte {
		minCost = e.rules.HandPotAnte
	}
	paid := make([]int, len(seats))
	queue := make([]int, len(seats))
	for i := range queue {
		queue[i] = i
	}
	before := seatChips(seats) + st.Pots.Hand

	e.emit(st, PhaseEvent{Round: st.Round, Phase: PhaseBetting, MinCost: minCost, timestamp: e.clock.Now()})

	for len(queue) > 0 {
		seat := queue[0]
		queue = queue[1:]
		p := seats[seat]
		if !st.IsActive(p) {
			continue
		}
		if p.Chips() == 0 {
			e.logger.Debug("Skipping broke player", "player", p.Name)
			continue
		}

		owed := max(minCost-paid[seat], 0)
		options := betOptions(minCost, owed, p.Chips())
		view := newView(st, e.rules, p, PhaseBetting)
		view.MinCost = minCost
		view.Owed = owed

		dec, err := e.agents[p.Name].ChooseBet(view, options)
		if err != nil {
			return fmt.Errorf("%s betting: %w", p.Name, err)
		}
		opt, err := validateBet(dec, options)
		if err != nil {
			e.logger.Error("Invalid bet decision", "error", err, "player", p.Name)
			opt = callSlot(options)
			dec = BetDecision{Action: opt.Action, Reasoning: "fallback due to invalid decision"}
		}

		ev := BetEvent{Player: p.Name, Action: opt.Action, Reasoning: dec.Reasoning}
		switch opt.Action {
		case Fold:
			st.removeActive(p)
		case Check:
		case Call, AllIn:
			ev.Amount = e.collect(st, p, min(owed, p.Chips()))
			paid[seat] += ev.Amount
		case Raise:
			ev.Raise = dec.Raise
			ev.Amount = e.collect(st, p, owed+dec.Raise)
			paid[seat] += ev.Amount
			minCost += dec.Raise
			queue = requeueAfterRaise(len(seats), seat, func(i int) bool {
				return st.IsActive(seats[i])
			})
		}
		ev.Chips = p.Chips()
		ev.HandPot = st.Pots.Hand
		ev.timestamp = e.clock.Now()
		e.emit(st, ev)

		e.logger.Debug("Player action",
			"player", p.Name,
			"action", opt.Action,
			"amount", ev.Amount,
			"reasoning", dec.Reasoning)

		if len(st.Active) <= 1 {
			break
		}
	}

	if after := seatChips(seats) + st.Pots.Hand; after != before {
		return fmt.Errorf("%w: betting moved %d chips", ErrChipConservation, after-before)
	}
	return nil
}

// collect moves amount from p into the hand pot and returns what was moved.
func (e *Engine) collect(st *RoundState, p *Player, amount int) int {
	if amount > p.Chips() {
		e.logger.Warn("Debit exceeds balance", "player", p.Name, "amount", amount, "chips", p.Chips())
		amount = p.Chips()
	}
	if err := p.AdjustChips(-amount); err != nil {
		e.logger.Warn("Chip adjustment failed", "error", err)
	}
	st.Pots.Hand += amount
	return amount
}

func seatChips(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.Chips()
	}
	return total
}
