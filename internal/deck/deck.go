package deck

import (
	"fmt"
	rand "math/rand/v2"
	"strconv"
	"strings"
)

const (
	MinRepeat = 1
	MaxRepeat = 10
)

// FallbackCard is dealt when an exhausted pile is drawn from under the
// Fallback policy: the Ace of the first standard suit.
var FallbackCard = NewCard(Spades, Ace)

// SuitConfig selects which suits a pile is built from
type SuitConfig string

const (
	Standard     SuitConfig = "standard"
	ClubsOnly    SuitConfig = "clubs"
	DiamondsOnly SuitConfig = "diamonds"
	HeartsOnly   SuitConfig = "hearts"
	SpadesOnly   SuitConfig = "spades"
)

// ParseSuitConfig parses a suit selector. Matching is case-insensitive and
// an empty string selects the standard four-suit set.
func ParseSuitConfig(s string) (SuitConfig, error) {
	switch cfg := SuitConfig(strings.ToLower(strings.TrimSpace(s))); cfg {
	case "":
		return Standard, nil
	case Standard, ClubsOnly, DiamondsOnly, HeartsOnly, SpadesOnly:
		return cfg, nil
	default:
		return "", fmt.Errorf("unknown suit config %q (want standard, clubs, diamonds, hearts or spades)", s)
	}
}

// Suits returns the suits the configuration builds from, in build order
func (c SuitConfig) Suits() []Suit {
	switch c {
	case ClubsOnly:
		return []Suit{Clubs}
	case DiamondsOnly:
		return []Suit{Diamonds}
	case HeartsOnly:
		return []Suit{Hearts}
	case SpadesOnly:
		return []Suit{Spades}
	default:
		return []Suit{Spades, Hearts, Diamonds, Clubs}
	}
}

// SingleSuit reports whether the repeat count applies to this configuration
func (c SuitConfig) SingleSuit() bool {
	return len(c.Suits()) == 1
}

// ParseRepeatCount converts user input into a repeat count. Non-numeric
// input yields 1 and numeric input is clamped to [MinRepeat, MaxRepeat].
func ParseRepeatCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return MinRepeat
	}
	return ClampRepeat(n)
}

// ClampRepeat clamps n to [MinRepeat, MaxRepeat]
func ClampRepeat(n int) int {
	if n < MinRepeat {
		return MinRepeat
	}
	if n > MaxRepeat {
		return MaxRepeat
	}
	return n
}

// Build creates a shuffled card sequence. Single-suit configurations repeat
// the 13 ranks repeat times; the standard configuration ignores repeat and
// always yields one 52-card set.
func Build(cfg SuitConfig, repeat int, rng *rand.Rand) []Card {
	copies := 1
	if cfg.SingleSuit() {
		copies = ClampRepeat(repeat)
	}

	suits := cfg.Suits()
	cards := make([]Card, 0, copies*len(suits)*len(Ranks))
	for i := 0; i < copies; i++ {
		for _, suit := range suits {
			for _, rank := range Ranks {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}

	Shuffle(cards, rng)
	return cards
}

// Shuffle randomizes cards in place (Fisher-Yates)
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// EmptyPolicy decides what an exhausted pile deals
type EmptyPolicy int

const (
	// Fallback deals FallbackCard forever once the pile is empty
	Fallback EmptyPolicy = iota
	// Reshuffle rebuilds the pile from its configuration
	Reshuffle
)

// String returns the configuration name of the policy
func (p EmptyPolicy) String() string {
	switch p {
	case Reshuffle:
		return "reshuffle"
	default:
		return "fallback"
	}
}

// ParseEmptyPolicy parses "fallback" or "reshuffle"
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fallback":
		return Fallback, nil
	case "reshuffle":
		return Reshuffle, nil
	default:
		return Fallback, fmt.Errorf("unknown empty pile policy %q", s)
	}
}

// Pile is the shared draw pile for a round. Cards are drawn from the end of
// the sequence, so the last shuffled position is dealt first.
type Pile struct {
	cards      []Card
	cfg        SuitConfig
	repeat     int
	rng        *rand.Rand
	policy     EmptyPolicy
	reshuffles int
}

// NewPile builds and shuffles a new pile
func NewPile(cfg SuitConfig, repeat int, rng *rand.Rand, policy EmptyPolicy) *Pile {
	return &Pile{
		cards:  Build(cfg, repeat, rng),
		cfg:    cfg,
		repeat: repeat,
		rng:    rng,
		policy: policy,
	}
}

// NewPileFromCards wraps an explicit sequence; the last card is drawn first.
// The configuration is only consulted by the Reshuffle policy.
func NewPileFromCards(cards []Card, cfg SuitConfig, rng *rand.Rand, policy EmptyPolicy) *Pile {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return &Pile{cards: cp, cfg: cfg, repeat: MinRepeat, rng: rng, policy: policy}
}

// Draw removes and returns the last card. The boolean is false when the
// card did not come from the pile (fallback on an exhausted pile).
func (p *Pile) Draw() (Card, bool) {
	if len(p.cards) == 0 {
		if p.policy != Reshuffle {
			return FallbackCard, false
		}
		p.cards = Build(p.cfg, p.repeat, p.rng)
		p.reshuffles++
	}

	last := len(p.cards) - 1
	card := p.cards[last]
	p.cards = p.cards[:last]
	if !card.Valid() {
		return FallbackCard, false
	}
	return card, true
}

// Remaining returns the number of cards left in the pile
func (p *Pile) Remaining() int {
	return len(p.cards)
}

// Cards returns a copy of the undealt cards in pile order
func (p *Pile) Cards() []Card {
	cp := make([]Card, len(p.cards))
	copy(cp, p.cards)
	return cp
}

// Config returns the suit configuration and repeat count the pile was built with
func (p *Pile) Config() (SuitConfig, int) {
	return p.cfg, p.repeat
}

// Reshuffles returns how many times the pile has been rebuilt after running dry
func (p *Pile) Reshuffles() int {
	return p.reshuffles
}
