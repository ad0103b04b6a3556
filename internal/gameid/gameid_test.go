package gameid

import (
	rand "math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		assert.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := NewGenerator(rand.New(rand.NewPCG(1, 2)), fixedClock(at)).Generate()
	b := NewGenerator(rand.New(rand.NewPCG(1, 2)), fixedClock(at)).Generate()
	c := NewGenerator(rand.New(rand.NewPCG(3, 4)), fixedClock(at)).Generate()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGeneratorSortsByTime(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var prev string
	for i := 0; i < 20; i++ {
		id := NewGenerator(rng, fixedClock(base.Add(time.Duration(i)*time.Millisecond))).Generate()
		if prev != "" {
			assert.Less(t, prev, id)
		}
		prev = id
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	at := time.Date(2025, 7, 4, 9, 30, 15, 123_000_000, time.UTC)
	id := NewGenerator(rand.New(rand.NewPCG(1, 1)), fixedClock(at)).Generate()

	got, err := Timestamp(id)
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "want %v got %v", at, got)
}

func TestVersionBits(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewPCG(5, 5)), nil)
	raw := g.uuidV7()
	assert.Equal(t, byte(0x70), raw[6]&0xf0)
	assert.Equal(t, byte(0x80), raw[8]&0xc0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid", id: "01h2xcejqtf2nbrexx3vqjhp41"},
		{name: "too short", id: "01h2xcejqtf2nbrexx3vqjhp4", wantErr: true},
		{name: "too long", id: "01h2xcejqtf2nbrexx3vqjhp411", wantErr: true},
		{name: "first char too high", id: "81h2xcejqtf2nbrexx3vqjhp41", wantErr: true},
		{name: "excluded letter", id: "01h2xcejqtf2nbrexx3vqjhpi1", wantErr: true},
		{name: "uppercase", id: "01H2XCEJQTF2NBREXX3VQJHP41", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
