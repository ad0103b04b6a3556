package game

import (
	"testing"

	"github.com/lox/powerjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenScores(score int) map[Seat]int {
	scores := make(map[Seat]int, len(Seats))
	for _, seat := range Seats {
		scores[seat] = score
	}
	return scores
}

func TestSettleRanking(t *testing.T) {
	hands := map[Seat][]deck.Card{
		Player: deck.MustParseCards("AsKh"), // 21
		AI:     deck.MustParseCards("KdQc"), // 20
		AI2:    deck.MustParseCards("9s9h"), // 18
		Dealer: deck.MustParseCards("7dKs"), // 17
	}

	s := Settle(hands, evenScores(10))

	assert.Equal(t, []Seat{Player, AI, AI2, Dealer}, s.Ranking)
	assert.Equal(t, map[Seat]int{Player: 12, AI: 10, AI2: 9, Dealer: 8}, s.Scores())
	assert.Equal(t, 1, s.Results[Player].Rank)
	assert.Equal(t, 2, s.Results[Player].Delta())
	assert.Equal(t, []string{
		"Round over! Scores updated by ranking.",
		"Ranking: 1.player, 2.ai, 3.ai2, 4.dealer",
	}, s.Log)
}

func TestSettleAllBust(t *testing.T) {
	hands := map[Seat][]deck.Card{
		Player: deck.MustParseCards("KsQh5d"),
		AI:     deck.MustParseCards("KdQc2s"),
		AI2:    deck.MustParseCards("9s9h9d"),
		Dealer: deck.MustParseCards("7d8s9c"),
	}

	s := Settle(hands, evenScores(3))

	assert.Empty(t, s.Ranking)
	assert.Equal(t, evenScores(2), s.Scores())
	for _, seat := range Seats {
		assert.True(t, s.Results[seat].Bust)
		assert.Zero(t, s.Results[seat].Rank)
	}
	assert.Equal(t, []string{"Round over! Scores updated by ranking."}, s.Log)
}

func TestSettleTiesBreakBySeatName(t *testing.T) {
	hands := map[Seat][]deck.Card{
		Player: deck.MustParseCards("KsQh"), // 20
		AI:     deck.MustParseCards("KdQc"), // 20
		AI2:    deck.MustParseCards("Kc9h"), // 19
		Dealer: deck.MustParseCards("Tc9d"), // 19
	}

	s := Settle(hands, evenScores(10))
	assert.Equal(t, []Seat{AI, Player, AI2, Dealer}, s.Ranking)
	assert.Equal(t, map[Seat]int{AI: 11, Player: 10, AI2: 9, Dealer: 8}, s.Scores())
}

func TestSettleTwentyOneBonusOnlyForFirst(t *testing.T) {
	hands := map[Seat][]deck.Card{
		Player: deck.MustParseCards("AsKh"), // 21
		AI:     deck.MustParseCards("AdQc"), // 21
		AI2:    deck.MustParseCards("KsQd5c"),
		Dealer: deck.MustParseCards("Kc7d"),
	}

	s := Settle(hands, evenScores(10))
	require.Equal(t, []Seat{AI, Player, Dealer}, s.Ranking)
	assert.Equal(t, 12, s.Results[AI].NewScore)
	assert.Equal(t, 10, s.Results[Player].NewScore)
	assert.Equal(t, 9, s.Results[Dealer].NewScore)
	assert.Equal(t, 9, s.Results[AI2].NewScore)
}

func TestSettleEmptyHandsRankLast(t *testing.T) {
	hands := map[Seat][]deck.Card{
		Player: deck.MustParseCards("5s"),
	}

	s := Settle(hands, evenScores(0))
	assert.Equal(t, []Seat{Player, AI, AI2, Dealer}, s.Ranking)
	assert.Equal(t, -2, s.Results[Dealer].NewScore)
}

func TestSettlementPatch(t *testing.T) {
	hands := map[Seat][]deck.Card{
		Player: deck.MustParseCards("AsKh"),
		AI:     deck.MustParseCards("KdQc"),
		AI2:    deck.MustParseCards("9s9h"),
		Dealer: deck.MustParseCards("7dKs"),
	}

	p := Settle(hands, evenScores(10)).Patch()
	assert.Equal(t, map[Seat]int{Player: 2, AI2: -1, Dealer: -2}, p.Scores)
	assert.Len(t, p.Log, 2)

	st := newState(10)
	st.Apply(p)
	assert.Equal(t, map[Seat]int{Player: 12, AI: 10, AI2: 9, Dealer: 8}, st.Scores())
}
