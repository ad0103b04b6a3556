package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota + 1
	Hearts
	Diamonds
	Clubs
)

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The zero value is not a valid rank.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in deck order
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// Points returns the blackjack point value of the rank with aces counted
// high (11). Invalid ranks are worth nothing.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 11
	case r >= Two && r <= Ten:
		return int(r)
	case r >= Jack && r <= King:
		return 10
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠", "10♦")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Valid reports whether both suit and rank are set to known values.
func (c Card) Valid() bool {
	return c.Suit >= Spades && c.Suit <= Clubs && c.Rank >= Ace && c.Rank <= King
}

// ParseCards parses a compact card string such as "AsKh10dTc" into cards.
// Ranks are A,2-9,T or 10,J,Q,K and suits are s,h,d,c (case-insensitive).
func ParseCards(s string) ([]Card, error) {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	cards := []Card{}

	for i := 0; i < len(s); {
		var rank Rank
		switch c := s[i]; {
		case c == 'a':
			rank = Ace
		case c == 't':
			rank = Ten
		case c == 'j':
			rank = Jack
		case c == 'q':
			rank = Queen
		case c == 'k':
			rank = King
		case c == '1' && i+1 < len(s) && s[i+1] == '0':
			rank = Ten
			i++
		case c >= '2' && c <= '9':
			rank = Rank(c - '0')
		default:
			return nil, fmt.Errorf("invalid rank %q at position %d", c, i)
		}
		i++

		if i >= len(s) {
			return nil, fmt.Errorf("missing suit for rank %s", rank)
		}

		var suit Suit
		switch s[i] {
		case 's':
			suit = Spades
		case 'h':
			suit = Hearts
		case 'd':
			suit = Diamonds
		case 'c':
			suit = Clubs
		default:
			return nil, fmt.Errorf("invalid suit %q at position %d", s[i], i)
		}
		i++

		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
