package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/powerjack/internal/game"
	"github.com/lox/powerjack/internal/randutil"
	"github.com/lox/powerjack/internal/tui"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

// PlayCmd runs an interactive game
type PlayCmd struct {
	Config   string `short:"c" default:"powerjack.hcl" help:"HCL configuration file (defaults apply when missing)"`
	Suits    string `help:"Default suits: standard, clubs, diamonds, hearts or spades"`
	Repeat   int    `help:"Default repeat count for single-suit piles (1-10)"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	LogLevel string `help:"Log level: debug, info, warn or error"`
	LogFile  string `help:"Log file path"`
	NoColor  bool   `help:"Disable colored output"`
}

func (c *PlayCmd) Run() error {
	cfg, err := loadConfig(c.Config, overrides{
		Suits:    c.Suits,
		Repeat:   c.Repeat,
		LogLevel: c.LogLevel,
		LogFile:  c.LogFile,
	})
	if err != nil {
		return err
	}

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger, logFile, err := setupFileLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			fmt.Printf("failed to close log file: %v\n", err)
		}
	}()

	logger.Info("Starting interactive game",
		"config", c.Config,
		"seed", c.Seed,
		"starting_score", cfg.Game.StartingScore,
		"suits", cfg.Deck.Suits,
		"repeat", cfg.Deck.Repeat)

	table := game.NewTable(
		game.WithConfig(cfg),
		game.WithRNG(randutil.New(c.Seed)),
		game.WithLogger(logger),
	)
	defer table.Close()

	sub := tui.Subscribe(table.EventBus(), logger)
	model := tui.New(table, sub, logger, tui.WithDefaults(roundConfig(cfg)))
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})

	err = g.Wait()
	logger.Info("Interactive game finished", "error", err)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
