package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/powerjack/internal/fileutil"
	"github.com/lox/powerjack/internal/simulator"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// SimulateCmd plays headless games
type SimulateCmd struct {
	Games         int           `default:"100" help:"Number of games to simulate"`
	Rounds        int           `default:"50" help:"Maximum rounds per game"`
	Seed          int64         `default:"0" help:"RNG seed (0 for random)"`
	PowerCardRate float64       `default:"0" help:"Chance the player uses a power card on each turn (0-1)"`
	Timeout       time.Duration `default:"30s" help:"Timeout per game"`
	Parallel      int           `default:"0" help:"Games played at once (0 for one per CPU)"`
	Suits         string        `help:"Suits: standard, clubs, diamonds, hearts or spades"`
	Repeat        int           `help:"Repeat count for single-suit piles (1-10)"`
	Config        string        `short:"c" default:"powerjack.hcl" help:"HCL configuration file (defaults apply when missing)"`
	Output        string        `short:"o" help:"Also write the summary to this file"`
	Verbose       bool          `help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	if c.PowerCardRate < 0 || c.PowerCardRate > 1 {
		return fmt.Errorf("power card rate must be between 0 and 1: %v", c.PowerCardRate)
	}

	cfg, err := loadConfig(c.Config, overrides{Suits: c.Suits, Repeat: c.Repeat})
	if err != nil {
		return err
	}

	logger := setupLogger(c.Verbose)
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Games:         c.Games,
		Rounds:        c.Rounds,
		Seed:          c.Seed,
		PowerCardRate: c.PowerCardRate,
		Timeout:       c.Timeout,
		Parallelism:   c.Parallel,
		Round:         roundConfig(cfg),
		Settings:      cfg,
		Logger:        logger,
	})

	fmt.Println(titleStyle.Render(" ♠ ♥ powerjack simulation ♦ ♣ "))
	fmt.Printf("Simulating %d games of up to %d rounds (seed %d)...\n", c.Games, c.Rounds, sim.Seed())

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.WriteSummary(os.Stdout, stats, sim.Seed())
	if c.Output != "" {
		err := fileutil.WriteAtomic(c.Output, 0o644, func(w io.Writer) error {
			simulator.WriteSummary(w, stats, sim.Seed())
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}
		fmt.Printf("\nSummary saved to %s\n", c.Output)
	}
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
