// Package simulator plays many bot-only Sabaac games concurrently and
// aggregates their outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/sabaac/internal/bot"
	"github.com/lox/sabaac/internal/deck"
	"github.com/lox/sabaac/internal/game"
	"github.com/lox/sabaac/internal/randutil"
	"github.com/lox/sabaac/internal/statistics"
)

// DefaultRoundLimit caps games between bots that never bust each other out.
const DefaultRoundLimit = 500

// Config holds configuration for running simulations
type Config struct {
	Games         int
	Players       []string // one bot strategy per seat
	StartingChips int
	Seed          int64
	Rules         game.Rules
	RoundLimit    int
	Workers       int
	Timeout       time.Duration // per game, zero for none
	Logger        *log.Logger
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("at least 2 players required, got %d", len(c.Players))
	}
	if c.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive, got %d", c.StartingChips)
	}
	for _, strategy := range c.Players {
		if _, err := bot.New(strategy, randutil.New(0), log.New(io.Discard)); err != nil {
			return err
		}
	}
	if c.Rules.HandSize == 0 {
		c.Rules = game.DefaultRules()
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	if c.RoundLimit <= 0 {
		c.RoundLimit = DefaultRoundLimit
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return nil
}

// Simulator runs Sabaac game simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}, nil
}

// Run plays every game and returns the aggregate. A game that runs the deck
// dry is recorded without a winner; any other engine error stops the run.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			record, err := s.playGame(gctx, i)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, record.Seed, err)
			}
			mu.Lock()
			stats.Add(record)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.logger.Info("Simulation complete", "games", stats.Games, "mean_rounds", stats.Mean())
	return stats, nil
}

// playGame plays game i. Seats rotate with i so no strategy keeps the first
// seat across the run.
func (s *Simulator) playGame(ctx context.Context, i int) (statistics.GameRecord, error) {
	seed := randutil.Derive(s.config.Seed, i)
	record := statistics.GameRecord{Seed: seed}
	rng := randutil.New(seed)

	n := len(s.config.Players)
	players := make([]*game.Player, 0, n)
	agents := make(map[string]game.Agent, n)
	strategies := make(map[string]string, n)
	for seat := range n {
		idx := (seat + i) % n
		strategy := s.config.Players[idx]
		name := fmt.Sprintf("%s-%d", strategy, idx+1)
		agent, err := bot.New(strategy, rng, s.config.Logger)
		if err != nil {
			return record, err
		}
		players = append(players, game.NewPlayer(name, s.config.StartingChips))
		agents[name] = agent
		strategies[name] = strategy
	}

	collector := &collector{record: &record}
	engine, err := game.NewEngine(rng, players, agents,
		game.WithRules(s.config.Rules),
		game.WithRoundLimit(s.config.RoundLimit),
		game.WithLogger(s.config.Logger),
	)
	if err != nil {
		return record, err
	}
	engine.Events().Subscribe(collector)

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	result, err := engine.RunGame(ctx)
	switch {
	case errors.Is(err, deck.ErrDeckExhausted):
		record.DeckExhausted = true
		s.logger.Debug("Deck exhausted", "game", i+1, "seed", seed, "round", result.Rounds)
	case err != nil:
		return record, err
	}

	record.Rounds = result.Rounds
	record.LimitReached = result.LimitReached
	if result.Winner != nil && !record.DeckExhausted {
		record.Winner = strategies[result.Winner.Name]
	}
	return record, nil
}

// collector tallies per-round outcomes from engine events
type collector struct {
	record *statistics.GameRecord
}

func (c *collector) OnEvent(event game.GameEvent) {
	switch ev := event.(type) {
	case game.ShiftEvent:
		c.record.Shifts++
	case game.ResolutionEvent:
		c.record.Resolutions++
		res := ev.Resolution
		switch {
		case res.Winner == nil:
			c.record.Rollovers++
		case res.Forfeit:
			c.record.Forfeits++
		}
		if res.Winner != nil {
			switch res.Rank {
			case game.RankPureSabaac:
				c.record.PureSabaacs++
			case game.RankIdiotsArray:
				c.record.IdiotsArrays++
			}
		}
		c.record.SabaacPaid += res.SabaacPotWon
	}
}
