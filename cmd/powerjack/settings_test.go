package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/powerjack/internal/config"
	"github.com/lox/powerjack/internal/deck"
	"github.com/lox/powerjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.hcl"), overrides{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powerjack.hcl")
	src := `
deck {
  suits  = "standard"
  repeat = 1
}
log {
  level = "info"
  file  = "from-file.log"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := loadConfig(path, overrides{
		Suits:    "Hearts",
		Repeat:   42,
		LogLevel: "debug",
		LogFile:  "from-flag.log",
	})
	require.NoError(t, err)
	assert.Equal(t, deck.HeartsOnly, cfg.Deck.Suits)
	assert.Equal(t, deck.MaxRepeat, cfg.Deck.Repeat)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "from-flag.log", cfg.Log.File)

	assert.Equal(t, game.RoundConfig{Suits: deck.HeartsOnly, Repeat: deck.MaxRepeat}, roundConfig(cfg))
}

func TestLoadConfigRejectsBadOverrides(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.hcl")

	_, err := loadConfig(missing, overrides{Suits: "jokers"})
	assert.Error(t, err)

	_, err = loadConfig(missing, overrides{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestRoundConfigStandardIgnoresRepeat(t *testing.T) {
	cfg := config.Default()
	cfg.Deck.Repeat = 5
	assert.Equal(t, game.DefaultRoundConfig(), roundConfig(cfg))
}

func TestEffectiveRepeat(t *testing.T) {
	assert.Equal(t, 1, effectiveRepeat(deck.Standard, 4))
	assert.Equal(t, 4, effectiveRepeat(deck.ClubsOnly, 4))
	assert.Equal(t, deck.MaxRepeat, effectiveRepeat(deck.ClubsOnly, 99))
}
