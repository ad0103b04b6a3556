package game

import (
	"testing"

	"github.com/lox/powerjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideThresholds(t *testing.T) {
	tests := []struct {
		seat  Seat
		hit   string // highest value that still hits
		stand string // lowest value that stands
	}{
		{Dealer, "Ks6h", "Ks7h"},
		{AI, "Ks4h", "Ks5h"},
		{AI2, "Ks8h", "Ks9h"},
		{Player, "Ks6h", "Ks7h"},
		{Seat("ghost"), "Ks6h", "Ks7h"},
	}

	for _, tt := range tests {
		t.Run(tt.seat.String(), func(t *testing.T) {
			assert.Equal(t, Hit, Decide(deck.MustParseCards(tt.hit), tt.seat))
			assert.Equal(t, Stand, Decide(deck.MustParseCards(tt.stand), tt.seat))
		})
	}
}

func TestDecideEmptyHandHits(t *testing.T) {
	for _, seat := range Seats {
		assert.Equal(t, Hit, Decide(nil, seat), seat)
	}
}

func TestDecideBustStands(t *testing.T) {
	assert.Equal(t, Stand, Decide(deck.MustParseCards("KsQh5d"), AI2))
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 17, Threshold(Dealer))
	assert.Equal(t, 15, Threshold(AI))
	assert.Equal(t, 19, Threshold(AI2))
	assert.Equal(t, 17, Threshold(""))
}

func TestNextSeatCycles(t *testing.T) {
	assert.Equal(t, AI2, NextSeat(Dealer))
	assert.Equal(t, Player, NextSeat(AI2))
	assert.Equal(t, AI, NextSeat(Player))
	assert.Equal(t, Dealer, NextSeat(AI))
	assert.Equal(t, Dealer, NextSeat("ghost"))

	for _, start := range Seats {
		seat := start
		for i := 0; i < len(Rotation); i++ {
			seat = NextSeat(seat)
		}
		assert.Equal(t, start, seat, "four steps from %s", start)
	}
}

func TestParseSeat(t *testing.T) {
	seat, err := ParseSeat(" AI2 ")
	require.NoError(t, err)
	assert.Equal(t, AI2, seat)

	_, err = ParseSeat("croupier")
	assert.Error(t, err)
}

func TestSeatDisplayName(t *testing.T) {
	assert.Equal(t, "You", Player.DisplayName())
	assert.Equal(t, "AI 2", AI2.DisplayName())
	assert.True(t, Player.IsHuman())
	assert.False(t, Dealer.IsHuman())
}
