package game

import (
	"testing"

	"github.com/lox/powerjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHands() map[Seat][]deck.Card {
	return map[Seat][]deck.Card{
		Player: deck.MustParseCards("9s5h"),
		AI:     deck.MustParseCards("KdQc"),
		AI2:    deck.MustParseCards("2c"),
		Dealer: nil,
	}
}

func TestPowerCardCatalog(t *testing.T) {
	cards := PowerCards()
	require.Len(t, cards, 4)

	ids := make([]PowerCardID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	assert.Equal(t, []PowerCardID{Shield, Swap, Withdraw, ExtraPenalty}, ids)

	swap, ok := LookupPowerCard(Swap)
	require.True(t, ok)
	assert.Equal(t, ScopeTarget, swap.Scope)
	assert.True(t, swap.NeedsTarget())

	shield, _ := LookupPowerCard(Shield)
	assert.False(t, shield.NeedsTarget())

	// mutating the returned slice leaves the catalog alone
	cards[0].Name = "changed"
	assert.Equal(t, "Shield", PowerCards()[0].Name)
}

func TestParsePowerCardID(t *testing.T) {
	id, err := ParsePowerCardID("Extra-Penalty")
	require.NoError(t, err)
	assert.Equal(t, ExtraPenalty, id)

	_, err = ParsePowerCardID("double")
	assert.ErrorIs(t, err, ErrUnknownPowerCard)
}

func TestResolveShield(t *testing.T) {
	p, ok, err := ResolvePowerCard(testHands(), Shield, Player, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[Seat]int{Player: 1}, p.Scores)
	assert.Equal(t, []string{"You used power card: Shield"}, p.Log)
}

func TestResolveSwap(t *testing.T) {
	hands := testHands()
	p, ok, err := ResolvePowerCard(hands, Swap, Player, AI)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, deck.MustParseCards("9sQc"), p.Hands[Player])
	assert.Equal(t, deck.MustParseCards("Kd5h"), p.Hands[AI])
	// inputs are not mutated
	assert.Equal(t, deck.MustParseCards("9s5h"), hands[Player])
}

func TestResolveSwapWithEmptyHandOnlyLogs(t *testing.T) {
	p, ok, err := ResolvePowerCard(testHands(), Swap, Player, Dealer)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, p.Hands)
	assert.Len(t, p.Log, 1)
}

func TestResolveTargetRules(t *testing.T) {
	tests := []struct {
		name   string
		id     PowerCardID
		target Seat
	}{
		{"swap without target", Swap, ""},
		{"swap with self", Swap, Player},
		{"swap with unknown seat", Swap, "ghost"},
		{"withdraw without target", Withdraw, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok, err := ResolvePowerCard(testHands(), tt.id, Player, tt.target)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.True(t, p.Empty())
		})
	}
}

func TestResolveWithdraw(t *testing.T) {
	p, ok, err := ResolvePowerCard(testHands(), Withdraw, Player, AI)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, deck.MustParseCards("Kd"), p.Hands[AI])

	p, ok, err = ResolvePowerCard(testHands(), Withdraw, Player, Player)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, deck.MustParseCards("9s"), p.Hands[Player])

	p, ok, err = ResolvePowerCard(testHands(), Withdraw, Player, AI2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, p.Hands[AI2])
	assert.Contains(t, p.Hands, AI2)

	// empty hand: nothing to take back
	p, ok, err = ResolvePowerCard(testHands(), Withdraw, Player, Dealer)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, p.Hands)
}

func TestResolveExtraPenaltyHitsEverySeat(t *testing.T) {
	p, ok, err := ResolvePowerCard(testHands(), ExtraPenalty, Player, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[Seat]int{Player: -1, AI: -1, AI2: -1, Dealer: -1}, p.Scores)
	assert.Equal(t, []string{"You used power card: Extra Penalty"}, p.Log)
}

func TestResolveUnknownCard(t *testing.T) {
	_, ok, err := ResolvePowerCard(testHands(), "mulligan", Player, "")
	assert.ErrorIs(t, err, ErrUnknownPowerCard)
	assert.False(t, ok)
}

func TestResolveAsAutomatedSeat(t *testing.T) {
	p, ok, err := ResolvePowerCard(testHands(), Shield, AI2, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"AI 2 used power card: Shield"}, p.Log)
}
