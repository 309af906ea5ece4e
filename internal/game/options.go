package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/sabaac/internal/deck"
)

// EngineOption configures an Engine during creation.
type EngineOption func(*Engine)

// WithRules replaces the default table rules
func WithRules(rules Rules) EngineOption {
	return func(e *Engine) { e.rules = rules }
}

// WithLogger sets the engine logger. The engine logs under the "engine" prefix.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithEventBus publishes events on bus instead of a private bus
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// WithDeckFactory sets how the fresh deck is built at every round reset.
// The default builds the full deck and shuffles it.
func WithDeckFactory(factory func(rng *rand.Rand) *deck.Deck) EngineOption {
	return func(e *Engine) { e.newDeck = factory }
}

// WithRoundLimit stops RunGame after n rounds. Zero means no limit.
func WithRoundLimit(n int) EngineOption {
	return func(e *Engine) { e.roundLimit = n }
}

// WithFormatter sets the formatter used for action log lines
func WithFormatter(formatter *EventFormatter) EngineOption {
	return func(e *Engine) { e.formatter = formatter }
}

func shuffledDeck(rng *rand.Rand) *deck.Deck {
	d := deck.Build(rng)
	d.Shuffle()
	return d
}
