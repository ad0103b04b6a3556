package deck

import (
	"testing"

	"github.com/lox/powerjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStandardHas52UniqueCards(t *testing.T) {
	cards := Build(Standard, 1, randutil.New(1))
	require.Len(t, cards, 52)

	seen := make(map[Card]bool)
	for _, c := range cards {
		assert.True(t, c.Valid())
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
}

func TestBuildStandardIgnoresRepeat(t *testing.T) {
	assert.Len(t, Build(Standard, 5, randutil.New(1)), 52)
}

func TestBuildSingleSuitRepeats(t *testing.T) {
	cards := Build(ClubsOnly, 3, randutil.New(7))
	require.Len(t, cards, 39)
	counts := make(map[Rank]int)
	for _, c := range cards {
		assert.Equal(t, Clubs, c.Suit)
		counts[c.Rank]++
	}
	for _, r := range Ranks {
		assert.Equal(t, 3, counts[r], r.String())
	}
}

func TestBuildClampsRepeat(t *testing.T) {
	assert.Len(t, Build(HeartsOnly, 0, randutil.New(1)), 13)
	assert.Len(t, Build(HeartsOnly, 99, randutil.New(1)), 130)
}

func TestBuildIsDeterministicPerSeed(t *testing.T) {
	assert.Equal(t, Build(Standard, 1, randutil.New(3)), Build(Standard, 1, randutil.New(3)))
	assert.NotEqual(t, Build(Standard, 1, randutil.New(3)), Build(Standard, 1, randutil.New(4)))
}

func TestParseSuitConfig(t *testing.T) {
	for _, in := range []string{"standard", "clubs", "Diamonds", " HEARTS ", "spades"} {
		_, err := ParseSuitConfig(in)
		assert.NoError(t, err, in)
	}
	cfg, err := ParseSuitConfig("")
	require.NoError(t, err)
	assert.Equal(t, Standard, cfg)

	_, err = ParseSuitConfig("stars")
	assert.Error(t, err)
}

func TestParseRepeatCount(t *testing.T) {
	assert.Equal(t, 1, ParseRepeatCount("abc"))
	assert.Equal(t, 1, ParseRepeatCount(""))
	assert.Equal(t, 1, ParseRepeatCount("0"))
	assert.Equal(t, 4, ParseRepeatCount(" 4 "))
	assert.Equal(t, 10, ParseRepeatCount("25"))
}

func TestPileDrawsFromEnd(t *testing.T) {
	cards := MustParseCards("2s3s4s")
	pile := NewPileFromCards(cards, Standard, randutil.New(1), Fallback)

	c, ok := pile.Draw()
	assert.True(t, ok)
	assert.Equal(t, NewCard(Spades, Four), c)
	assert.Equal(t, 2, pile.Remaining())
}

func TestPileFallbackWhenEmpty(t *testing.T) {
	pile := NewPileFromCards(nil, ClubsOnly, randutil.New(1), Fallback)
	for i := 0; i < 3; i++ {
		c, ok := pile.Draw()
		assert.False(t, ok)
		assert.Equal(t, FallbackCard, c)
	}
	assert.Equal(t, 0, pile.Remaining())
}

func TestPileReshuffleWhenEmpty(t *testing.T) {
	pile := NewPileFromCards(nil, DiamondsOnly, randutil.New(1), Reshuffle)
	c, ok := pile.Draw()
	assert.True(t, ok)
	assert.Equal(t, Diamonds, c.Suit)
	assert.Equal(t, 12, pile.Remaining())
	assert.Equal(t, 1, pile.Reshuffles())
}

func TestPileSkipsMalformedCard(t *testing.T) {
	pile := NewPileFromCards([]Card{{}}, Standard, randutil.New(1), Fallback)
	c, ok := pile.Draw()
	assert.False(t, ok)
	assert.Equal(t, FallbackCard, c)
	assert.Equal(t, 0, pile.Remaining())
}

func TestParseEmptyPolicy(t *testing.T) {
	p, err := ParseEmptyPolicy("reshuffle")
	require.NoError(t, err)
	assert.Equal(t, Reshuffle, p)
	p, err = ParseEmptyPolicy("")
	require.NoError(t, err)
	assert.Equal(t, Fallback, p)
	_, err = ParseEmptyPolicy("panic")
	assert.Error(t, err)
}
