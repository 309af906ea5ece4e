package game

import (
	"errors"
	"fmt"
	"slices"
)

// DrawAction represents a drawing phase action
type DrawAction int

const (
	Stand DrawAction = iota
	Draw
	Exchange
	Insert
	Remove
	Swap
)

// String returns the string representation of a draw action
func (a DrawAction) String() string {
	return [...]string{"stand", "draw", "exchange", "insert", "remove", "swap"}[a]
}

// Label returns the menu text for a draw action
func (a DrawAction) Label() string {
	return [...]string{
		"Stand",
		"Draw",
		"Exchange",
		"Insert into Interference Field",
		"Remove from Interference Field",
		"Swap from Interference Field",
	}[a]
}

// UsesHand reports whether the action needs DrawDecision.HandIndex
func (a DrawAction) UsesHand() bool {
	return a == Exchange || a == Insert || a == Swap
}

// UsesField reports whether the action needs DrawDecision.FieldIndex
func (a DrawAction) UsesField() bool {
	return a == Remove || a == Swap
}

// drawOptions returns the draw actions available to p.
func drawOptions(p *Player) []DrawAction {
	options := []DrawAction{Stand, Draw}
	if len(p.Hand) > 0 {
		options = append(options, Exchange, Insert)
	}
	if len(p.Field) > 0 {
		options = append(options, Remove)
	}
	if len(p.Hand) > 0 && len(p.Field) > 0 {
		options = append(options, Swap)
	}
	return options
}

func validateDraw(p *Player, dec DrawDecision, options []DrawAction) error {
	if !slices.Contains(options, dec.Action) {
		return fmt.Errorf("action %s is not available", dec.Action)
	}
	if dec.Action.UsesHand() && (dec.HandIndex < 0 || dec.HandIndex >= len(p.Hand)) {
		return fmt.Errorf("hand: %w: %d", ErrIndexOutOfRange, dec.HandIndex)
	}
	if dec.Action.UsesField() && (dec.FieldIndex < 0 || dec.FieldIndex >= len(p.Field)) {
		return fmt.Errorf("field: %w: %d", ErrIndexOutOfRange, dec.FieldIndex)
	}
	return nil
}

// runDrawing runs passes over the active players until a pass in which
// everyone stands. Every action other than Stand is followed by a shift attempt.
func (e *Engine) runDrawing(st *RoundState) error {
	if len(st.Active) <= 1 {
		return nil
	}
	e.emit(st, PhaseEvent{Round: st.Round, Phase: PhaseDrawing, timestamp: e.clock.Now()})

	for pass := 1; ; pass++ {
		acted := false
		for _, p := range slices.Clone(st.Active) {
			options := drawOptions(p)
			view := newView(st, e.rules, p, PhaseDrawing)
			view.Pass = pass

			dec, err := e.agents[p.Name].ChooseDraw(view, options)
			if err != nil {
				return fmt.Errorf("%s drawing: %w", p.Name, err)
			}
			if err := validateDraw(p, dec, options); err != nil {
				e.logger.Error("Invalid draw decision", "error", err, "player", p.Name)
				dec = DrawDecision{Action: Stand, Reasoning: "fallback due to invalid decision"}
			}

			ev, err := e.applyDraw(st, p, dec)
			if err != nil {
				return fmt.Errorf("%s %s: %w", p.Name, dec.Action, err)
			}
			ev.Pass = pass
			e.emit(st, ev)

			if dec.Action != Stand {
				acted = true
				e.attemptShift(st)
			}
		}
		if !acted {
			e.logger.Debug("Drawing phase complete", "passes", pass)
			return nil
		}
	}
}

// applyDraw performs a validated draw decision.
func (e *Engine) applyDraw(st *RoundState, p *Player, dec DrawDecision) (DrawEvent, error) {
	ev := DrawEvent{Player: p.Name, Action: dec.Action, Reasoning: dec.Reasoning, timestamp: e.clock.Now()}
	switch dec.Action {
	case Stand:
	case Draw:
		c, err := st.Deck.Draw()
		if err != nil {
			return ev, err
		}
		p.AddToHand(c)
	case Exchange:
		old, err := p.RemoveFromHand(dec.HandIndex)
		if err != nil {
			return ev, err
		}
		st.Deck.Add(old)
		st.Deck.Shuffle()
		c, err := st.Deck.Draw()
		if err != nil {
			return ev, err
		}
		p.AddToHand(c)
	case Insert:
		c, err := p.RemoveFromHand(dec.HandIndex)
		if err != nil {
			return ev, err
		}
		p.AddToField(c)
		ev.Card = &c
	case Remove:
		c, err := p.RemoveFromField(dec.FieldIndex)
		if err != nil {
			return ev, err
		}
		p.AddToHand(c)
		ev.Card = &c
	case Swap:
		if err := p.SwapWithField(dec.HandIndex, dec.FieldIndex); err != nil {
			return ev, err
		}
		c := p.Field[dec.FieldIndex]
		ev.Card = &c
	default:
		return ev, errors.New("unknown draw action")
	}
	return ev, nil
}
