package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/sabaac/internal/deck"
)

var (
	// ErrChipConservation is returned when chips appear or disappear.
	ErrChipConservation = errors.New("chip conservation violated")

	// ErrGameOver is returned by RunRound once fewer than two players remain.
	ErrGameOver = errors.New("game is over")
)

// Engine runs a game of Sabaac: rounds of ante, deal, betting, drawing,
// resolution and continuation until one player is left.
type Engine struct {
	rules      Rules
	rng        *rand.Rand
	logger     *log.Logger
	clock      quartz.Clock
	bus        EventBus
	formatter  *EventFormatter
	newDeck    func(*rand.Rand) *deck.Deck
	roundLimit int

	agents   map[string]Agent
	state    RoundState
	initial  int // chips at the table when the game started
	departed int // chips carried away by eliminated and quitting players
}

// RoundResult summarizes one round
type RoundResult struct {
	Round      int
	Eliminated []string
	Quit       []string
	Resolution *Resolution // nil when the round ended at the ante
}

// GameResult summarizes a finished game
type GameResult struct {
	Winner       *Player // nil without a single survivor
	Rounds       int
	Pots         Pots
	LimitReached bool
}

// NewEngine creates an engine for players, each played by the agent with
// its name. The RNG is required to make randomness explicit and testing
// deterministic.
func NewEngine(rng *rand.Rand, players []*Player, agents map[string]Agent, opts ...EngineOption) (*Engine, error) {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	e := &Engine{
		rules:   DefaultRules(),
		rng:     rng,
		logger:  log.New(io.Discard),
		clock:   quartz.NewReal(),
		newDeck: shuffledDeck,
		agents:  agents,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithPrefix("engine")
	if e.bus == nil {
		e.bus = NewEventBus()
	}
	if e.formatter == nil {
		e.formatter = NewEventFormatter(FormattingOptions{})
	}

	if err := e.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(players) < 2 {
		return nil, fmt.Errorf("at least 2 players required, got %d", len(players))
	}
	if need := len(players) * e.rules.HandSize; need > deck.FullSize {
		return nil, fmt.Errorf("dealing %d cards to %d players needs %d cards, the deck has %d",
			e.rules.HandSize, len(players), need, deck.FullSize)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == nil || p.Name == "" {
			return nil, errors.New("players must have a name")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if agents[p.Name] == nil {
			return nil, fmt.Errorf("no agent for player %q", p.Name)
		}
		e.initial += p.Chips()
	}

	e.state.Roster = slices.Clone(players)
	return e, nil
}

// Events returns the bus the engine publishes on
func (e *Engine) Events() EventBus {
	return e.bus
}

// State returns the engine's round state. Callers must not modify it.
func (e *Engine) State() *RoundState {
	return &e.state
}

// Roster returns the players still at the table
func (e *Engine) Roster() []*Player {
	return slices.Clone(e.state.Roster)
}

// Rules returns the table rules
func (e *Engine) Rules() Rules {
	return e.rules
}

// RunGame plays rounds until at most one player is left, the round limit is
// reached or ctx is cancelled. The context is only checked between rounds.
func (e *Engine) RunGame(ctx context.Context) (*GameResult, error) {
	st := &e.state
	result := &GameResult{}
	for len(st.Roster) > 1 {
		if e.roundLimit > 0 && st.Round >= e.roundLimit {
			result.LimitReached = true
			break
		}
		if _, err := e.RunRound(ctx); err != nil {
			result.Rounds = st.Round
			result.Pots = st.Pots
			return result, err
		}
	}

	result.Rounds = st.Round
	result.Pots = st.Pots
	if len(st.Roster) == 1 {
		result.Winner = st.Roster[0]
	}
	end := GameEndEvent{Rounds: st.Round, SabaacPot: st.Pots.Sabaac, timestamp: e.clock.Now()}
	if result.Winner != nil {
		end.Winner = result.Winner.Name
	}
	e.emit(st, end)
	e.logger.Info("Game over", "winner", end.Winner, "rounds", st.Round, "limit", result.LimitReached)
	return result, nil
}

// RunRound plays a single round. A round that cannot complete, because the
// deck ran out or an agent failed, rolls the hand pot into the Sabaac pot and
// returns the error.
func (e *Engine) RunRound(ctx context.Context) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := &e.state
	if len(st.Roster) < 2 {
		return nil, ErrGameOver
	}

	st.Round++
	res := &RoundResult{Round: st.Round}
	e.logger.Debug("Starting round", "round", st.Round, "players", len(st.Roster))
	e.emit(st, RoundStartEvent{Round: st.Round, Players: names(st.Roster), SabaacPot: st.Pots.Sabaac, timestamp: e.clock.Now()})

	res.Eliminated = e.runAnte(st)
	if len(st.Roster) <= 1 {
		st.Active = slices.Clone(st.Roster)
		return res, e.verifyChips()
	}

	e.resetRound(st)
	if err := e.deal(st); err != nil {
		return res, e.abortRound(st, err)
	}
	if err := e.runBetting(st, true); err != nil {
		return res, e.abortRound(st, err)
	}
	e.attemptShift(st)
	if err := e.runDrawing(st); err != nil {
		return res, e.abortRound(st, err)
	}
	if err := e.runBetting(st, false); err != nil {
		return res, e.abortRound(st, err)
	}
	e.attemptShift(st)

	st.Log.Reset()
	handPot := st.Pots.Hand
	resolution, err := resolve(e.rules, &st.Pots, st.Active)
	if err != nil {
		e.logger.Warn("Pot award failed", "round", st.Round, "error", err)
	}
	res.Resolution = &resolution
	e.emit(st, ResolutionEvent{
		Round:      st.Round,
		Resolution: resolution,
		HandPot:    handPot,
		SabaacPot:  st.Pots.Sabaac,
		timestamp:  e.clock.Now(),
	})
	e.logger.Debug("Round resolved",
		"round", st.Round,
		"winner", winnerName(resolution),
		"rank", resolution.Rank,
		"handPot", resolution.HandPotWon,
		"sabaacPot", resolution.SabaacPotWon,
		"rolledOver", resolution.RolledOver)

	quit, err := e.runContinuation(st)
	res.Quit = quit
	if err != nil {
		return res, fmt.Errorf("round %d continuation: %w", st.Round, err)
	}
	return res, e.verifyChips()
}

// runAnte collects the Sabaac pot ante from every roster player. Players who
// hold no more than the ante are eliminated instead, and never pay part of it.
func (e *Engine) runAnte(st *RoundState) []string {
	var eliminated []string
	ante := e.rules.SabaacAnte
	for _, p := range slices.Clone(st.Roster) {
		if p.Chips() <= ante {
			st.removeFromRoster(p)
			e.departed += p.Chips()
			eliminated = append(eliminated, p.Name)
			ev := EliminationEvent{Player: p.Name, Chips: p.Chips(), timestamp: e.clock.Now()}
			if p.Chips() > 0 {
				ev.Taunt = fmt.Sprintf("Sorry, %s. The House always wins :)", p.Name)
			}
			e.logger.Info("Player eliminated", "player", p.Name, "chips", p.Chips())
			e.emit(st, ev)
			continue
		}
		if err := p.AdjustChips(-ante); err != nil {
			e.logger.Warn("Ante debit failed", "error", err)
		}
		st.Pots.Sabaac += ante
		e.emit(st, AnteEvent{Player: p.Name, Amount: ante, Chips: p.Chips(), timestamp: e.clock.Now()})
	}
	return eliminated
}

// resetRound starts a fresh round over the whole roster.
func (e *Engine) resetRound(st *RoundState) {
	st.Active = slices.Clone(st.Roster)
	for _, p := range st.Roster {
		p.EmptyHand()
	}
	st.Pots.Hand = 0
	st.Deck = e.newDeck(e.rng)
	st.Log.Reset()
}

// deal deals the hand size to every active player one card at a time.
func (e *Engine) deal(st *RoundState) error {
	for range e.rules.HandSize {
		for _, p := range st.Active {
			c, err := st.Deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing to %s: %w", p.Name, err)
			}
			p.AddToHand(c)
		}
	}
	e.emit(st, PhaseEvent{Round: st.Round, Phase: PhaseDeal, timestamp: e.clock.Now()})
	return nil
}

// runContinuation asks every roster player whether to keep playing. It stops
// once only one player is left.
func (e *Engine) runContinuation(st *RoundState) ([]string, error) {
	var quit []string
	for _, p := range slices.Clone(st.Roster) {
		if len(st.Roster) <= 1 {
			break
		}
		cont, err := e.agents[p.Name].ChooseContinue(newView(st, e.rules, p, PhaseContinuation))
		if err != nil {
			return quit, fmt.Errorf("%s: %w", p.Name, err)
		}
		if cont {
			continue
		}
		st.removeFromRoster(p)
		e.departed += p.Chips()
		quit = append(quit, p.Name)
		e.logger.Info("Player quit", "player", p.Name, "chips", p.Chips())
		e.emit(st, QuitEvent{Player: p.Name, Chips: p.Chips(), timestamp: e.clock.Now()})
	}
	return quit, nil
}

// abortRound ends a round that cannot complete.
func (e *Engine) abortRound(st *RoundState, cause error) error {
	rolled := st.Pots.RollOver()
	e.logger.Error("Round aborted", "round", st.Round, "error", cause, "rolledOver", rolled)
	e.emit(st, RoundAbortEvent{Round: st.Round, Err: cause, RolledOver: rolled, timestamp: e.clock.Now()})
	if err := e.verifyChips(); err != nil {
		return errors.Join(fmt.Errorf("round %d aborted: %w", st.Round, cause), err)
	}
	return fmt.Errorf("round %d aborted: %w", st.Round, cause)
}

// verifyChips checks that the roster, the pots and the departed players hold
// every chip the game started with.
func (e *Engine) verifyChips() error {
	total := seatChips(e.state.Roster) + e.state.Pots.Total() + e.departed
	if total != e.initial {
		e.logger.Error("Chip conservation violated", "expected", e.initial, "actual", total)
		return fmt.Errorf("%w: expected %d chips, found %d", ErrChipConservation, e.initial, total)
	}
	return nil
}

// emit records an event in the action log and publishes it.
func (e *Engine) emit(st *RoundState, event GameEvent) {
	st.Log.Append(event.Timestamp(), e.formatter.Format(event))
	e.bus.Publish(event)
}

func names(players []*Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func winnerName(res Resolution) string {
	if res.Winner == nil {
		return ""
	}
	return res.Winner.Name
}
