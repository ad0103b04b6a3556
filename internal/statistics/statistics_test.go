package statistics

import (
	"math"
	"testing"

	"github.com/lox/powerjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func round(values, deltas [4]int, ranking ...game.Seat) RoundResult {
	r := RoundResult{Values: map[game.Seat]int{}, Deltas: map[game.Seat]int{}, Ranking: ranking}
	for i, seat := range game.Seats {
		r.Values[seat] = values[i]
		r.Deltas[seat] = deltas[i]
	}
	return r
}

func TestStatisticsEmpty(t *testing.T) {
	s := New()
	for _, seat := range game.Seats {
		assert.Zero(t, s.MeanDelta(seat))
		assert.Zero(t, s.Variance(seat))
		assert.Zero(t, s.StdError(seat))
		assert.Zero(t, s.WinRate(seat))
		assert.Zero(t, s.MeanFinalScore(seat))
	}
	assert.Zero(t, s.MedianRoundsToGameOver())
	assert.Error(t, s.Validate())
}

func TestAddRound(t *testing.T) {
	s := New()
	// player, ai, ai2, dealer
	s.AddRound(round([4]int{21, 20, 18, 17}, [4]int{2, 0, -1, -2}, game.Player, game.AI, game.AI2, game.Dealer))
	s.AddRound(round([4]int{25, 19, 23, 17}, [4]int{-1, 1, -1, 0}, game.AI, game.Dealer))
	s.AddRound(round([4]int{22, 22, 22, 22}, [4]int{-1, -1, -1, -1}))

	assert.Equal(t, 3, s.Rounds)
	assert.Equal(t, 1, s.NoWinnerRounds)
	assert.Equal(t, 1, s.Seats[game.Player].Wins)
	assert.Equal(t, 1, s.Seats[game.AI].Wins)
	assert.Equal(t, 2, s.Seats[game.Player].Busts)
	assert.Equal(t, 1, s.Seats[game.Player].TwentyOnes)
	assert.Equal(t, 1, s.Seats[game.Dealer].Busts)
	assert.Zero(t, s.Seats[game.Dealer].Wins)

	assert.InDelta(t, 0.0, s.MeanDelta(game.Player), 1e-9)
	assert.InDelta(t, 1.0/3.0, s.WinRate(game.AI), 1e-9)
	assert.InDelta(t, 2.0/3.0, s.BustRate(game.Player), 1e-9)
}

func TestVariance(t *testing.T) {
	s := New()
	for _, d := range []int{2, -2, 2, -2} {
		s.AddRound(round([4]int{18, 18, 18, 18}, [4]int{d, 0, 0, 0}, game.AI))
	}
	// mean 0, sum of squares 16, n-1 = 3
	assert.InDelta(t, 16.0/3.0, s.Variance(game.Player), 1e-9)
	assert.InDelta(t, math.Sqrt(16.0/3.0), s.StdDev(game.Player), 1e-9)
	assert.InDelta(t, math.Sqrt(16.0/3.0)/2, s.StdError(game.Player), 1e-9)

	low, high := s.ConfidenceInterval95(game.Player)
	assert.InDelta(t, -high, low, 1e-9)
	assert.Zero(t, s.Variance(game.AI))
}

func TestAddGame(t *testing.T) {
	s := New()
	final := map[game.Seat]int{game.Player: 4, game.AI: -1, game.AI2: 6, game.Dealer: 2}
	s.AddGame(GameResult{Rounds: 7, GameOver: true, FinalScores: final})
	s.AddGame(GameResult{Rounds: 20, GameOver: false, FinalScores: final})
	s.AddGame(GameResult{Rounds: 3, GameOver: true, FinalScores: final})

	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 2, s.GamesOver)
	assert.Equal(t, 5.0, s.MedianRoundsToGameOver())
	assert.Equal(t, 3.0, s.Percentile(0))
	assert.Equal(t, 7.0, s.Percentile(1))
	assert.Equal(t, 4.0, s.MeanFinalScore(game.Player))
}

func TestValidate(t *testing.T) {
	s := New()
	s.AddRound(round([4]int{18, 17, 16, 15}, [4]int{1, 0, -1, -2}, game.Player, game.AI, game.AI2, game.Dealer))
	s.AddGame(GameResult{Rounds: 1})
	require.NoError(t, s.Validate())

	s.Seats[game.AI].Wins++
	assert.Error(t, s.Validate())
}
