// Package simulator plays powerjack games headlessly with instant pacing
// and aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/powerjack/internal/config"
	"github.com/lox/powerjack/internal/game"
	"github.com/lox/powerjack/internal/randutil"
	"github.com/lox/powerjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// eventBuffer bounds the events a single round may queue before the driver
// reads them. Publishing happens on the driver goroutine for player actions,
// so the channel must never fill up.
const eventBuffer = 4096

// Config holds configuration for running simulations
type Config struct {
	Games int
	// Rounds caps each game; a game also ends at game over
	Rounds        int
	Seed          int64
	PowerCardRate float64 // chance the player plays a power card each turn
	Timeout       time.Duration
	Parallelism   int
	Round         game.RoundConfig
	// Settings supplies the score and pile rules; pacing is ignored
	Settings *config.Config
	// PlayerPolicy drives the human seat, game.Decide when nil
	PlayerPolicy game.Policy
	Logger       *log.Logger
}

// Simulator runs powerjack game simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.NumCPU()
	}
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	if cfg.PlayerPolicy == nil {
		cfg.PlayerPolicy = game.Decide
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	cfg.Round = cfg.Round.Normalize()
	return &Simulator{config: cfg}
}

// Seed returns the base seed games are derived from
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// gameRun is everything one game produced
type gameRun struct {
	result statistics.GameResult
	rounds []statistics.RoundResult
}

// Run plays every game and returns the aggregated statistics. Games run in
// parallel but are folded into the statistics in game order.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}

	runs := make([]gameRun, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)

	for i := range runs {
		g.Go(func() error {
			run, err := s.playGameWithTimeout(ctx, i)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New()
	for _, run := range runs {
		for _, r := range run.rounds {
			stats.AddRound(r)
		}
		stats.AddGame(run.result)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGameWithTimeout runs a single game with timeout protection
func (s *Simulator) playGameWithTimeout(ctx context.Context, n int) (gameRun, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	run, err := s.playGame(ctx, n)
	if errors.Is(err, context.DeadlineExceeded) {
		return run, fmt.Errorf("game %d timed out after %v (seed: %d)", n+1, s.config.Timeout, s.config.Seed)
	}
	if err != nil {
		return run, fmt.Errorf("game %d failed (seed: %d): %w", n+1, s.config.Seed, err)
	}
	return run, nil
}

// playGame plays rounds at one table until game over or the round cap
func (s *Simulator) playGame(ctx context.Context, n int) (gameRun, error) {
	logger := s.config.Logger.With("game", n+1)
	events := make(chan game.GameEvent, eventBuffer)

	table := game.NewTable(
		game.WithConfig(s.config.Settings),
		game.WithPacing(config.Instant()),
		game.WithRNG(randutil.Derive(s.config.Seed, 2*n)),
		game.WithLogger(logger),
	)
	defer table.Close()
	table.EventBus().Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
		events <- event
	}))

	d := &driver{
		table:  table,
		events: events,
		policy: s.config.PlayerPolicy,
		rate:   s.config.PowerCardRate,
		rng:    randutil.Derive(s.config.Seed, 2*n+1),
		logger: logger,
	}

	run := gameRun{result: statistics.GameResult{Game: n, Seed: s.config.Seed}}
	for round := 1; round <= s.config.Rounds; round++ {
		result, err := d.playRound(ctx, s.config.Round)
		if err != nil {
			return run, err
		}
		if result != nil {
			result.Game = n
			result.Round = round
			run.rounds = append(run.rounds, *result)
		}
		if table.Snapshot().GameOver {
			break
		}
	}

	snap := table.Snapshot()
	run.result.Rounds = len(run.rounds)
	run.result.GameOver = snap.GameOver
	run.result.FinalScores = snap.Scores()
	logger.Debug("Game finished", "rounds", run.result.Rounds, "game_over", snap.GameOver, "scores", run.result.FinalScores)
	return run, nil
}

// driver plays the human seat from events
type driver struct {
	table  *game.Table
	events chan game.GameEvent
	policy game.Policy
	rate   float64
	rng    *rand.Rand
	logger *log.Logger
}

// playRound deals a round and plays the human seat until the round settles.
// It returns nil when a power card ended the game before settlement.
func (d *driver) playRound(ctx context.Context, cfg game.RoundConfig) (*statistics.RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.table.StartRound(cfg); err != nil {
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	powerCards := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case event := <-d.events:
			switch e := event.(type) {
			case game.RoundSettledEvent:
				return roundResult(e.Settlement, powerCards), nil
			case game.GameOverEvent:
				return nil, nil
			case game.TurnErrorEvent:
				d.logger.Warn("Turn failed", "seat", e.Seat, "error", e.Err)
			}

			played, err := d.act()
			if err != nil {
				return nil, err
			}
			powerCards += played
		}
	}
}

// act takes the human seat's turn if it is waiting on one, returning the
// number of power cards played
func (d *driver) act() (int, error) {
	snap := d.table.Snapshot()
	if !snap.PlayerCanAct() || snap.Seat(game.Player).Stood {
		return 0, nil
	}

	played := 0
	if d.rate > 0 && d.rng.Float64() < d.rate {
		cards := game.PowerCards()
		card := cards[d.rng.IntN(len(cards))]
		target := game.Seats[d.rng.IntN(len(game.Seats))]
		ok, err := d.table.UsePowerCard(card.ID, target)
		if err != nil && !errors.Is(err, game.ErrGameOver) {
			return 0, err
		}
		if ok {
			played++
		}
		snap = d.table.Snapshot()
		if !snap.PlayerCanAct() {
			return played, nil
		}
	}

	hand := snap.Seat(game.Player).Hand
	var err error
	switch d.policy(hand, game.Player) {
	case game.Hit:
		err = d.table.Hit()
	default:
		err = d.table.Stand()
	}
	if errors.Is(err, game.ErrTurnInProgress) || errors.Is(err, game.ErrNotPlayersTurn) {
		return played, nil
	}
	return played, err
}

func roundResult(s game.Settlement, powerCards int) *statistics.RoundResult {
	r := &statistics.RoundResult{
		Values:     make(map[game.Seat]int, len(s.Results)),
		Deltas:     make(map[game.Seat]int, len(s.Results)),
		Ranking:    append([]game.Seat(nil), s.Ranking...),
		PowerCards: powerCards,
	}
	for seat, res := range s.Results {
		r.Values[seat] = res.Value
		r.Deltas[seat] = res.Delta()
	}
	return r
}

// WriteSummary writes a summary of simulation results to w
func WriteSummary(w io.Writer, stats *statistics.Statistics, seed int64) {
	fmt.Fprintf(w, "\n=== FINAL RESULTS (seed %d) ===\n", seed)
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Rounds settled: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Rounds with no winner: %d\n", stats.NoWinnerRounds)
	fmt.Fprintf(w, "Power cards played: %d\n", stats.PowerCardsUsed)

	fmt.Fprintf(w, "\n=== GAME LENGTH ===\n")
	if stats.GamesOver > 0 {
		fmt.Fprintf(w, "Game over reached: %d of %d games (%.1f%%)\n",
			stats.GamesOver, stats.Games, float64(stats.GamesOver)/float64(stats.Games)*100)
		fmt.Fprintf(w, "Rounds to game over: median %.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
			stats.MedianRoundsToGameOver(), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	} else {
		fmt.Fprintf(w, "No game reached game over\n")
	}

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for _, seat := range game.Rotation {
		ss := stats.Seats[seat]
		low, high := stats.ConfidenceInterval95(seat)
		fmt.Fprintf(w, "%-7s wins %5.1f%%  busts %5.1f%%  21s %4d  %+.3f pts/round [%+.3f, %+.3f]  final %.1f\n",
			seat.DisplayName(),
			stats.WinRate(seat)*100,
			stats.BustRate(seat)*100,
			ss.TwentyOnes,
			stats.MeanDelta(seat), low, high,
			stats.MeanFinalScore(seat))
	}
}
