package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/sabaac/internal/game"
)

// RandBot makes uniform random legal choices. It becomes more likely to stand
// with every drawing pass so drawing phases finish.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

// ChooseBet picks a random offered option, with a random raise amount.
func (r *RandBot) ChooseBet(view game.TableView, options []game.BetOption) (game.BetDecision, error) {
	opt := options[r.rng.IntN(len(options))]
	dec := game.BetDecision{Action: opt.Action, Reasoning: "rand-bot random action"}
	if opt.Action == game.Raise {
		dec.Raise = opt.MinRaise + r.rng.IntN(opt.MaxRaise-opt.MinRaise+1)
	}
	return dec, nil
}

// ChooseDraw stands more often as passes go by, otherwise picks a random action.
func (r *RandBot) ChooseDraw(view game.TableView, options []game.DrawAction) (game.DrawDecision, error) {
	if r.rng.Float64() < min(1, float64(view.Pass)/4) {
		return game.DrawDecision{Action: game.Stand, Reasoning: "rand-bot stands"}, nil
	}
	action := options[r.rng.IntN(len(options))]
	dec := game.DrawDecision{Action: action, Reasoning: "rand-bot random action"}
	if action.UsesHand() {
		dec.HandIndex = r.rng.IntN(len(view.Self.Hand))
	}
	if action.UsesField() {
		dec.FieldIndex = r.rng.IntN(len(view.Self.Field))
	}
	return dec, nil
}

// ChooseContinue always stays.
func (r *RandBot) ChooseContinue(view game.TableView) (bool, error) {
	return true, nil
}
