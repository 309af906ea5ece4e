// Package bot provides computer players for the Sabaac engine.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/sabaac/internal/game"
)

// Strategy names accepted by New
const (
	StrategyCall   = "call"
	StrategyRandom = "random"
	StrategyTarget = "target"
)

var constructors = map[string]func(rng *rand.Rand, logger *log.Logger) game.Agent{
	StrategyCall:   func(_ *rand.Rand, logger *log.Logger) game.Agent { return NewCallBot(logger) },
	StrategyRandom: func(rng *rand.Rand, logger *log.Logger) game.Agent { return NewRandBot(rng, logger) },
	StrategyTarget: func(_ *rand.Rand, logger *log.Logger) game.Agent { return NewTargetBot(logger) },
}

// New creates a bot for the named strategy.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	ctor, ok := constructors[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (available: %v)", strategy, Strategies())
	}
	return ctor(rng, logger.WithPrefix("bot")), nil
}

// Strategies returns the available strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// findBet returns the decision for the preferred action, or the call slot
// when that action is not offered.
func findBet(preferred game.Action, options []game.BetOption, reasoning string) game.BetDecision {
	if slices.ContainsFunc(options, func(o game.BetOption) bool { return o.Action == preferred }) {
		return game.BetDecision{Action: preferred, Reasoning: reasoning}
	}
	return game.BetDecision{Action: options[1].Action, Reasoning: "fallback: " + reasoning}
}

func option(options []game.BetOption, action game.Action) (game.BetOption, bool) {
	i := slices.IndexFunc(options, func(o game.BetOption) bool { return o.Action == action })
	if i < 0 {
		return game.BetOption{}, false
	}
	return options[i], true
}
