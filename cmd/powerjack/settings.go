package main

import (
	"fmt"

	"github.com/lox/powerjack/internal/config"
	"github.com/lox/powerjack/internal/deck"
	"github.com/lox/powerjack/internal/game"
)

// overrides are command-line values that replace configuration file values
// when set
type overrides struct {
	Suits    string
	Repeat   int
	LogLevel string
	LogFile  string
}

// loadConfig reads path, applies flag overrides and validates the result
func loadConfig(path string, o overrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if o.Suits != "" {
		suits, err := deck.ParseSuitConfig(o.Suits)
		if err != nil {
			return nil, err
		}
		cfg.Deck.Suits = suits
	}
	if o.Repeat != 0 {
		cfg.Deck.Repeat = deck.ClampRepeat(o.Repeat)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// roundConfig is the round configuration a bare "start" deals
func roundConfig(cfg *config.Config) game.RoundConfig {
	return game.RoundConfig{Suits: cfg.Deck.Suits, Repeat: cfg.Deck.Repeat}.Normalize()
}
