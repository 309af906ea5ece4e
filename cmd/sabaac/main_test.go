package main

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sabaac/internal/config"
)

func TestPlayCmdApply(t *testing.T) {
	t.Parallel()

	seed := int64(5)
	cmd := PlayCmd{
		Human:      []string{" Han ", "Chewie"},
		Bot:        []string{"target"},
		StartChips: 40,
		Seed:       &seed,
		RoundLimit: 12,
		LogFile:    "game.log",
	}
	cfg := config.DefaultConfig()
	cmd.apply(cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []config.PlayerConfig{
		{Name: "Han", Kind: config.KindHuman},
		{Name: "Chewie", Kind: config.KindHuman},
		{Name: "target-1", Kind: config.KindBot, Strategy: "target"},
	}, cfg.Players)
	assert.Equal(t, 40, cfg.Game.StartingChips)
	assert.Equal(t, &seed, cfg.Game.Seed)
	assert.Equal(t, 12, cfg.Game.RoundLimit)
	assert.Equal(t, "game.log", cfg.Log.File)
}

func TestPlayCmdApplyKeepsConfiguredPlayers(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	(&PlayCmd{}).apply(cfg)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	level, err := logLevel("warn", false)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, level)

	level, err = logLevel("warn", true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	_, err = logLevel("loud", false)
	assert.Error(t, err)
}

func TestLoadConfigMissingFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvStartingChips, "44")

	cfg, err := loadConfig(filepath.Join(dir, "none.hcl"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, 44, cfg.Game.StartingChips)
}
