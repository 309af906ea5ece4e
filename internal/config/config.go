// Package config loads table configuration from HCL files and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/sabaac/internal/bot"
	"github.com/lox/sabaac/internal/game"
)

// Environment variables that override the configuration file
const (
	// EnvSeed fixes the random seed for a reproducible game
	EnvSeed = "SABAAC_SEED"

	// EnvStartingChips sets every player's starting balance
	EnvStartingChips = "SABAAC_STARTING_CHIPS"

	// EnvLogLevel sets the log level (debug, info, warn, error)
	EnvLogLevel = "SABAAC_LOG_LEVEL"

	// EnvShiftChance sets the probability that a shift attempt succeeds
	EnvShiftChance = "SABAAC_SHIFT_CHANCE"
)

// Player kinds
const (
	KindHuman = "human"
	KindBot   = "bot"
)

// Config represents the complete table configuration
type Config struct {
	Game    GameSettings
	Rules   RulesConfig
	Players []PlayerConfig
	Log     LogSettings
}

// GameSettings contains table-level settings
type GameSettings struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	Seed          *int64 `hcl:"seed,optional"`
	RoundLimit    int    `hcl:"round_limit,optional"`
}

// RulesConfig overrides individual table rules. Unset fields keep the
// standard value.
type RulesConfig struct {
	HandSize      *int     `hcl:"hand_size,optional"`
	SabaacAnte    *int     `hcl:"sabaac_ante,optional"`
	HandPotAnte   *int     `hcl:"hand_pot_ante,optional"`
	BustThreshold *int     `hcl:"bust_threshold,optional"`
	PureSabaac    *int     `hcl:"pure_sabaac,optional"`
	ShiftChance   *float64 `hcl:"shift_chance,optional"`
	IdiotsArray   []int    `hcl:"idiots_array,optional"`
}

// PlayerConfig defines a seat at the table
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Kind     string `hcl:"kind,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// file mirrors Config with optional blocks for decoding
type file struct {
	Game    *GameSettings  `hcl:"game,block"`
	Rules   *RulesConfig   `hcl:"rules,block"`
	Players []PlayerConfig `hcl:"player,block"`
	Log     *LogSettings   `hcl:"log,block"`
}

// DefaultConfig returns the default table: one human against two bots
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			StartingChips: 30,
		},
		Players: []PlayerConfig{
			{Name: "Player", Kind: KindHuman},
			{Name: "Lando", Kind: KindBot, Strategy: "target"},
			{Name: "Jabba", Kind: KindBot, Strategy: "random"},
		},
		Log: LogSettings{
			Level: "info",
			File:  "sabaac.log",
		},
	}
}

// Load loads configuration from an HCL file, returning the defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded file
	diags = gohcl.DecodeBody(f.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	if decoded.Game != nil {
		config.Game = *decoded.Game
		if config.Game.StartingChips == 0 {
			config.Game.StartingChips = 30
		}
	}
	if decoded.Rules != nil {
		config.Rules = *decoded.Rules
	}
	if decoded.Log != nil {
		if decoded.Log.Level != "" {
			config.Log.Level = decoded.Log.Level
		}
		if decoded.Log.File != "" {
			config.Log.File = decoded.Log.File
		}
	}
	if len(decoded.Players) > 0 {
		config.Players = decoded.Players
	}

	// Apply defaults to players
	for i := range config.Players {
		p := &config.Players[i]
		if p.Kind == "" {
			if p.Strategy != "" {
				p.Kind = KindBot
			} else {
				p.Kind = KindHuman
			}
		}
		if p.Kind == KindBot && p.Strategy == "" {
			p.Strategy = "target"
		}
	}

	return config, nil
}

// Environ returns the process environment overlaid on the given .env files.
// Missing files are skipped and real environment variables win.
func Environ(dotenv ...string) (map[string]string, error) {
	env := make(map[string]string)
	for _, path := range dotenv {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range values {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides settings from the SABAAC_* variables in env
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := env[EnvSeed]; v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Game.Seed = &seed
	}
	if v := env[EnvStartingChips]; v != "" {
		chips, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvStartingChips, err)
		}
		c.Game.StartingChips = chips
	}
	if v := env[EnvLogLevel]; v != "" {
		c.Log.Level = v
	}
	if v := env[EnvShiftChance]; v != "" {
		chance, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvShiftChance, err)
		}
		c.Rules.ShiftChance = &chance
	}
	return nil
}

// GameRules returns the standard rules with the configured overrides applied
func (c *Config) GameRules() game.Rules {
	rules := game.DefaultRules()
	r := c.Rules
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&rules.HandSize, r.HandSize)
	set(&rules.SabaacAnte, r.SabaacAnte)
	set(&rules.HandPotAnte, r.HandPotAnte)
	set(&rules.BustThreshold, r.BustThreshold)
	set(&rules.PureSabaac, r.PureSabaac)
	if r.ShiftChance != nil {
		rules.ShiftChance = *r.ShiftChance
	}
	if len(r.IdiotsArray) > 0 {
		rules.IdiotsArray = slices.Clone(r.IdiotsArray)
	}
	return rules
}

// Humans returns the names of the human seats in table order
func (c *Config) Humans() []string {
	var names []string
	for _, p := range c.Players {
		if p.Kind == KindHuman {
			names = append(names, p.Name)
		}
	}
	return names
}

// Validate validates the table configuration
func (c *Config) Validate() error {
	var errs []error
	if c.Game.StartingChips <= 0 {
		errs = append(errs, fmt.Errorf("starting chips must be positive, got %d", c.Game.StartingChips))
	}
	if c.Game.RoundLimit < 0 {
		errs = append(errs, fmt.Errorf("round limit must not be negative, got %d", c.Game.RoundLimit))
	}
	if len(c.Players) < 2 {
		errs = append(errs, fmt.Errorf("at least 2 players must be configured, got %d", len(c.Players)))
	}

	strategies := bot.Strategies()
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		switch {
		case p.Name == "":
			errs = append(errs, errors.New("player name must not be empty"))
		case seen[p.Name]:
			errs = append(errs, fmt.Errorf("duplicate player name %q", p.Name))
		}
		seen[p.Name] = true

		switch p.Kind {
		case KindHuman:
		case KindBot:
			if !slices.Contains(strategies, p.Strategy) {
				errs = append(errs, fmt.Errorf("player %s: invalid strategy %q", p.Name, p.Strategy))
			}
		default:
			errs = append(errs, fmt.Errorf("player %s: invalid kind %q", p.Name, p.Kind))
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	if err := c.GameRules().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("invalid rules: %w", err))
	}
	return errors.Join(errs...)
}
