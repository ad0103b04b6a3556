// Package config loads powerjack settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/powerjack/internal/deck"
)

const (
	DefaultStartingScore = 10
	DefaultMinPileSize   = 20
	DefaultThinkMin      = 1000 * time.Millisecond
	DefaultThinkMax      = 3000 * time.Millisecond
	DefaultHitPause      = 1000 * time.Millisecond
	DefaultStandPause    = 500 * time.Millisecond
	DefaultLogLevel      = "info"
	DefaultLogFile       = "powerjack.log"
)

// Config is the resolved configuration
type Config struct {
	Game   GameSettings
	Deck   DeckSettings
	Pacing Pacing
	Log    LogSettings
}

// GameSettings controls the score ledger and the draw pile lifecycle
type GameSettings struct {
	StartingScore int
	// A new pile is built at round start when fewer cards than this remain
	MinPileSize int
	EmptyPile   deck.EmptyPolicy
}

// DeckSettings is the default round configuration
type DeckSettings struct {
	Suits  deck.SuitConfig
	Repeat int
}

// Pacing holds the delays between automated turn transitions
type Pacing struct {
	ThinkMin   time.Duration
	ThinkMax   time.Duration
	HitPause   time.Duration
	StandPause time.Duration
}

// LogSettings configures the structured logger
type LogSettings struct {
	Level string
	File  string
}

// file schema
type fileConfig struct {
	Game   *gameBlock   `hcl:"game,block"`
	Deck   *deckBlock   `hcl:"deck,block"`
	Pacing *pacingBlock `hcl:"pacing,block"`
	Log    *logBlock    `hcl:"log,block"`
}

type gameBlock struct {
	StartingScore int    `hcl:"starting_score,optional"`
	MinPileSize   int    `hcl:"min_pile_size,optional"`
	EmptyPile     string `hcl:"empty_pile,optional"`
}

type deckBlock struct {
	Suits  string `hcl:"suits,optional"`
	Repeat int    `hcl:"repeat,optional"`
}

type pacingBlock struct {
	ThinkMin   string `hcl:"think_min,optional"`
	ThinkMax   string `hcl:"think_max,optional"`
	HitPause   string `hcl:"hit_pause,optional"`
	StandPause string `hcl:"stand_pause,optional"`
}

type logBlock struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			StartingScore: DefaultStartingScore,
			MinPileSize:   DefaultMinPileSize,
			EmptyPile:     deck.Fallback,
		},
		Deck: DeckSettings{
			Suits:  deck.Standard,
			Repeat: 1,
		},
		Pacing: Pacing{
			ThinkMin:   DefaultThinkMin,
			ThinkMax:   DefaultThinkMax,
			HitPause:   DefaultHitPause,
			StandPause: DefaultStandPause,
		},
		Log: LogSettings{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. Unset values keep their defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if err := fc.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if g := fc.Game; g != nil {
		if g.StartingScore != 0 {
			cfg.Game.StartingScore = g.StartingScore
		}
		if g.MinPileSize != 0 {
			cfg.Game.MinPileSize = g.MinPileSize
		}
		policy, err := deck.ParseEmptyPolicy(g.EmptyPile)
		if err != nil {
			return fmt.Errorf("game.empty_pile: %w", err)
		}
		cfg.Game.EmptyPile = policy
	}

	if d := fc.Deck; d != nil {
		suits, err := deck.ParseSuitConfig(d.Suits)
		if err != nil {
			return fmt.Errorf("deck.suits: %w", err)
		}
		cfg.Deck.Suits = suits
		if d.Repeat != 0 {
			cfg.Deck.Repeat = d.Repeat
		}
	}

	if p := fc.Pacing; p != nil {
		fields := []struct {
			name string
			raw  string
			dst  *time.Duration
		}{
			{"think_min", p.ThinkMin, &cfg.Pacing.ThinkMin},
			{"think_max", p.ThinkMax, &cfg.Pacing.ThinkMax},
			{"hit_pause", p.HitPause, &cfg.Pacing.HitPause},
			{"stand_pause", p.StandPause, &cfg.Pacing.StandPause},
		}
		for _, f := range fields {
			if f.raw == "" {
				continue
			}
			d, err := time.ParseDuration(f.raw)
			if err != nil {
				return fmt.Errorf("pacing.%s: %w", f.name, err)
			}
			*f.dst = d
		}
	}

	if l := fc.Log; l != nil {
		if l.Level != "" {
			cfg.Log.Level = l.Level
		}
		if l.File != "" {
			cfg.Log.File = l.File
		}
	}

	return nil
}

// Validate checks the configuration for values the engine cannot run with
func (c *Config) Validate() error {
	if c.Game.StartingScore < 0 {
		return fmt.Errorf("starting score must not be negative: %d", c.Game.StartingScore)
	}
	if c.Game.MinPileSize < 0 {
		return fmt.Errorf("min pile size must not be negative: %d", c.Game.MinPileSize)
	}
	if c.Deck.Repeat < deck.MinRepeat || c.Deck.Repeat > deck.MaxRepeat {
		return fmt.Errorf("deck repeat must be between %d and %d: %d", deck.MinRepeat, deck.MaxRepeat, c.Deck.Repeat)
	}
	if _, err := deck.ParseSuitConfig(string(c.Deck.Suits)); err != nil {
		return err
	}
	if err := c.Pacing.Validate(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// Validate checks that all delays are usable
func (p Pacing) Validate() error {
	if p.ThinkMin < 0 || p.ThinkMax < 0 || p.HitPause < 0 || p.StandPause < 0 {
		return errors.New("pacing delays must not be negative")
	}
	if p.ThinkMax < p.ThinkMin {
		return fmt.Errorf("think_max (%s) must not be less than think_min (%s)", p.ThinkMax, p.ThinkMin)
	}
	return nil
}

// Instant returns pacing with every delay set to zero, used by the simulator
func Instant() Pacing {
	return Pacing{}
}
