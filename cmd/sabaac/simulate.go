package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/sabaac/internal/fileutil"
	"github.com/lox/sabaac/internal/randutil"
	"github.com/lox/sabaac/internal/simulator"
)

// SimulateCmd runs many seeded bot games concurrently
type SimulateCmd struct {
	Games       int           `kong:"default='1000',help='Number of games to simulate'"`
	Players     []string      `kong:"default='target,random,call',help='Bot strategy for each seat'"`
	StartChips  int           `kong:"default='30',help='Starting chip count'"`
	Seed        *int64        `kong:"help='Base RNG seed (optional)'"`
	RoundLimit  int           `kong:"default='500',help='Stop a game after this many rounds'"`
	Workers     int           `kong:"default='0',help='Concurrent games (0 for one per CPU)'"`
	Timeout     time.Duration `kong:"default='10s',help='Per-game timeout'"`
	ShiftChance *float64      `kong:"help='Probability that a shift attempt succeeds'"`
	Config      string        `kong:"default='sabaac.hcl',help='HCL table configuration (rules only)'"`
	Env         string        `kong:"default='.env',name='env-file',help='Environment overrides file'"`
	Output      string        `kong:"help='Write the statistics as JSON to this file'"`
	Debug       bool          `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := loadConfig(c.Config, c.Env)
	if err != nil {
		return err
	}
	if c.ShiftChance != nil {
		cfg.Rules.ShiftChance = c.ShiftChance
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}

	level, err := logLevel(cfg.Log.Level, c.Debug)
	if err != nil {
		return err
	}
	logger := setupLogger(os.Stderr, level)

	seed := randutil.Seed(cfg.Game.Seed)
	logger.Info("Starting simulation", "games", c.Games, "players", c.Players, "seed", seed)

	sim, err := simulator.New(simulator.Config{
		Games:         c.Games,
		Players:       c.Players,
		StartingChips: c.StartChips,
		Seed:          seed,
		Rules:         cfg.GameRules(),
		RoundLimit:    c.RoundLimit,
		Workers:       c.Workers,
		Timeout:       c.Timeout,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler()
	defer cancel()

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(" Simulation results "))
	fmt.Println(stats.Summary())
	fmt.Println(infoStyle.Render(fmt.Sprintf("seed %d, %s", seed, time.Since(start).Round(time.Millisecond))))

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, stats.Report()); err != nil {
			return err
		}
		logger.Info("Statistics written", "file", c.Output)
	}
	return nil
}
