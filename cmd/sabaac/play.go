package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/sabaac/internal/bot"
	"github.com/lox/sabaac/internal/config"
	"github.com/lox/sabaac/internal/game"
	"github.com/lox/sabaac/internal/prompt"
	"github.com/lox/sabaac/internal/randutil"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))
)

// PlayCmd runs a hot-seat game at one terminal
type PlayCmd struct {
	Config     string   `kong:"default='sabaac.hcl',help='HCL table configuration'"`
	Env        string   `kong:"default='.env',name='env-file',help='Environment overrides file'"`
	Human      []string `kong:"help='Human player names, replacing the configured players'"`
	Bot        []string `kong:"help='Bot strategies to seat, replacing the configured players'"`
	StartChips int      `kong:"help='Starting chip count (overrides config)'"`
	Seed       *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	RoundLimit int      `kong:"help='Stop after this many rounds (overrides config)'"`
	Reasoning  bool     `kong:"help='Show bot reasoning in the action log'"`
	LogFile    string   `kong:"help='Log file (overrides config)'"`
	Debug      bool     `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := loadConfig(c.Config, c.Env)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logLevel(cfg.Log.Level, c.Debug)
	if err != nil {
		return err
	}
	logger, closer, err := setupFileLogger(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	seed := randutil.Seed(cfg.Game.Seed)
	rng := randutil.New(seed)
	logger.Info("Starting game", "seed", seed, "players", len(cfg.Players))

	p := prompt.ForTerminal(os.Stdin, os.Stdout)
	console := prompt.NewConsole(p, logger)

	players := make([]*game.Player, 0, len(cfg.Players))
	agents := make(map[string]game.Agent, len(cfg.Players))
	for _, pc := range cfg.Players {
		players = append(players, game.NewPlayer(pc.Name, cfg.Game.StartingChips))
		if pc.Kind == config.KindHuman {
			agents[pc.Name] = console
			continue
		}
		agent, err := bot.New(pc.Strategy, rng, logger)
		if err != nil {
			return err
		}
		agents[pc.Name] = agent
	}

	formatter := game.NewEventFormatter(game.FormattingOptions{ShowReasonings: c.Reasoning})
	engine, err := game.NewEngine(rng, players, agents,
		game.WithRules(cfg.GameRules()),
		game.WithLogger(logger),
		game.WithRoundLimit(cfg.Game.RoundLimit),
		game.WithFormatter(formatter),
	)
	if err != nil {
		return err
	}
	if len(cfg.Humans()) == 0 {
		// Nobody sees a table view, so narrate the game instead.
		engine.Events().Subscribe(game.EventSubscriberFunc(func(ev game.GameEvent) {
			p.Display(formatter.Format(ev))
		}))
	}

	ctx, cancel := setupSignalHandler()
	defer cancel()

	p.Display(titleStyle.Render(" Sabaac "), "")
	result, err := engine.RunGame(ctx)
	switch {
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, prompt.ErrInputClosed), errors.Is(err, context.Canceled):
		p.Display("", "Game abandoned.")
	case err != nil:
		return err
	}

	p.Display("", titleStyle.Render(" Final standings "))
	p.Display(prompt.RenderStandings(players)...)
	if result != nil {
		summary := fmt.Sprintf("%d rounds played, %d chips left in the Sabaac pot", result.Rounds, result.Pots.Sabaac)
		if result.Winner != nil {
			summary = fmt.Sprintf("%s wins! %s", result.Winner.Name, summary)
		}
		p.Display(infoStyle.Render(summary))
	}
	return nil
}

// apply overrides the configuration with command-line flags
func (c *PlayCmd) apply(cfg *config.Config) {
	if len(c.Human) > 0 || len(c.Bot) > 0 {
		cfg.Players = cfg.Players[:0]
		for _, name := range c.Human {
			cfg.Players = append(cfg.Players, config.PlayerConfig{Name: strings.TrimSpace(name), Kind: config.KindHuman})
		}
		for i, strategy := range c.Bot {
			cfg.Players = append(cfg.Players, config.PlayerConfig{
				Name:     fmt.Sprintf("%s-%d", strategy, i+1),
				Kind:     config.KindBot,
				Strategy: strategy,
			})
		}
	}
	if c.StartChips > 0 {
		cfg.Game.StartingChips = c.StartChips
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}
	if c.RoundLimit > 0 {
		cfg.Game.RoundLimit = c.RoundLimit
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
}

// loadConfig reads the HCL file and applies environment overrides
func loadConfig(path, envFile string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	env, err := config.Environ(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}
	return cfg, nil
}
