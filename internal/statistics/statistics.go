// Package statistics aggregates simulated powerjack games.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/powerjack/internal/game"
)

// RoundResult is the outcome of one settled round
type RoundResult struct {
	Game       int
	Round      int
	Values     map[game.Seat]int
	Deltas     map[game.Seat]int // score change at settlement
	Ranking    []game.Seat       // non-bust seats, best first
	PowerCards int               // power cards the player used during the round
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Game        int
	Seed        int64
	Rounds      int // settled rounds
	GameOver    bool
	FinalScores map[game.Seat]int
}

// SeatStats tracks one seat across every round
type SeatStats struct {
	Rounds     int
	Wins       int // ranked first
	Busts      int
	TwentyOnes int
	SumDelta   float64
	SumDelta2  float64 // sum of squares for variance calculation
	SumFinal   int
}

// Statistics tracks simulation results
type Statistics struct {
	Rounds         int
	Games          int
	GamesOver      int
	NoWinnerRounds int // every seat bust
	PowerCardsUsed int

	// Rounds played before game over, one entry per finished game
	RoundsToGameOver []float64

	Seats map[game.Seat]*SeatStats
}

// New creates empty statistics with every seat present
func New() *Statistics {
	s := &Statistics{Seats: make(map[game.Seat]*SeatStats, len(game.Seats))}
	for _, seat := range game.Seats {
		s.Seats[seat] = &SeatStats{}
	}
	return s
}

// AddRound incorporates a settled round
func (s *Statistics) AddRound(r RoundResult) {
	s.Rounds++
	s.PowerCardsUsed += r.PowerCards
	if len(r.Ranking) == 0 {
		s.NoWinnerRounds++
	} else {
		s.Seats[r.Ranking[0]].Wins++
	}

	for _, seat := range game.Seats {
		ss := s.Seats[seat]
		ss.Rounds++
		value := r.Values[seat]
		if value > game.BlackjackValue {
			ss.Busts++
		}
		if value == game.BlackjackValue {
			ss.TwentyOnes++
		}
		d := float64(r.Deltas[seat])
		ss.SumDelta += d
		ss.SumDelta2 += d * d
	}
}

// AddGame incorporates a finished game
func (s *Statistics) AddGame(g GameResult) {
	s.Games++
	if g.GameOver {
		s.GamesOver++
		s.RoundsToGameOver = append(s.RoundsToGameOver, float64(g.Rounds))
	}
	for _, seat := range game.Seats {
		s.Seats[seat].SumFinal += g.FinalScores[seat]
	}
}

// MeanDelta returns the average score change per round for seat
func (s *Statistics) MeanDelta(seat game.Seat) float64 {
	ss := s.Seats[seat]
	if ss == nil || ss.Rounds == 0 {
		return 0
	}
	return ss.SumDelta / float64(ss.Rounds)
}

// Variance returns the sample variance of seat's per-round score change
func (s *Statistics) Variance(seat game.Seat) float64 {
	ss := s.Seats[seat]
	if ss == nil || ss.Rounds < 2 {
		return 0
	}
	mean := s.MeanDelta(seat)
	n := float64(ss.Rounds)
	return (ss.SumDelta2 - n*mean*mean) / (n - 1)
}

// StdDev returns the sample standard deviation of seat's score change
func (s *Statistics) StdDev(seat game.Seat) float64 {
	return math.Sqrt(s.Variance(seat))
}

// StdError returns the standard error of seat's mean score change
func (s *Statistics) StdError(seat game.Seat) float64 {
	ss := s.Seats[seat]
	if ss == nil || ss.Rounds == 0 {
		return 0
	}
	return s.StdDev(seat) / math.Sqrt(float64(ss.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for seat's mean
func (s *Statistics) ConfidenceInterval95(seat game.Seat) (float64, float64) {
	mean := s.MeanDelta(seat)
	margin := 1.96 * s.StdError(seat)
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds seat ranked first
func (s *Statistics) WinRate(seat game.Seat) float64 {
	return s.rate(seat, func(ss *SeatStats) int { return ss.Wins })
}

// BustRate returns the fraction of rounds seat went bust
func (s *Statistics) BustRate(seat game.Seat) float64 {
	return s.rate(seat, func(ss *SeatStats) int { return ss.Busts })
}

func (s *Statistics) rate(seat game.Seat, count func(*SeatStats) int) float64 {
	ss := s.Seats[seat]
	if ss == nil || ss.Rounds == 0 {
		return 0
	}
	return float64(count(ss)) / float64(ss.Rounds)
}

// MeanFinalScore returns seat's average score at the end of a game
func (s *Statistics) MeanFinalScore(seat game.Seat) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].SumFinal) / float64(s.Games)
}

// MedianRoundsToGameOver returns the median game length among games that ended
func (s *Statistics) MedianRoundsToGameOver() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the rounds-to-game-over value at percentile p (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.RoundsToGameOver) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.RoundsToGameOver))
	copy(sorted, s.RoundsToGameOver)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if s.GamesOver > s.Games {
		return fmt.Errorf("games over (%d) exceeds games played (%d)", s.GamesOver, s.Games)
	}
	if len(s.RoundsToGameOver) != s.GamesOver {
		return fmt.Errorf("rounds-to-game-over length (%d) does not match games over (%d)",
			len(s.RoundsToGameOver), s.GamesOver)
	}

	wins := 0
	for _, seat := range game.Seats {
		ss := s.Seats[seat]
		if ss.Rounds != s.Rounds {
			return fmt.Errorf("seat %s saw %d rounds, expected %d", seat, ss.Rounds, s.Rounds)
		}
		wins += ss.Wins
	}
	if wins+s.NoWinnerRounds != s.Rounds {
		return fmt.Errorf("wins (%d) plus no-winner rounds (%d) does not match rounds (%d)",
			wins, s.NoWinnerRounds, s.Rounds)
	}
	return nil
}
