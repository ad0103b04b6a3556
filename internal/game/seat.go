package game

import (
	"fmt"
	"strings"

	"github.com/lox/powerjack/internal/deck"
)

// Seat identifies one of the four participants at the table
type Seat string

const (
	Player Seat = "player"
	AI     Seat = "ai"
	AI2    Seat = "ai2"
	Dealer Seat = "dealer"
)

// Seats lists every seat in deal order
var Seats = []Seat{Player, AI, AI2, Dealer}

// Rotation is the fixed turn order. It is cyclic: the seat after the last
// entry is the first.
var Rotation = []Seat{Dealer, AI2, Player, AI}

// NextSeat returns the seat that acts after s. Unknown seats restart the
// rotation at the dealer.
func NextSeat(s Seat) Seat {
	for i, seat := range Rotation {
		if seat == s {
			return Rotation[(i+1)%len(Rotation)]
		}
	}
	return Rotation[0]
}

// Valid reports whether s is one of the four seats
func (s Seat) Valid() bool {
	switch s {
	case Player, AI, AI2, Dealer:
		return true
	default:
		return false
	}
}

// IsHuman reports whether the seat is driven by user actions
func (s Seat) IsHuman() bool {
	return s == Player
}

// String returns the seat identifier
func (s Seat) String() string {
	return string(s)
}

// DisplayName returns the label used in the game log
func (s Seat) DisplayName() string {
	switch s {
	case Player:
		return "You"
	case AI:
		return "AI"
	case AI2:
		return "AI 2"
	case Dealer:
		return "Dealer"
	default:
		return string(s)
	}
}

// ParseSeat parses a seat identifier (case-insensitive)
func ParseSeat(s string) (Seat, error) {
	seat := Seat(strings.ToLower(strings.TrimSpace(s)))
	if !seat.Valid() {
		return "", fmt.Errorf("unknown seat %q (want player, ai, ai2 or dealer)", s)
	}
	return seat, nil
}

// SeatState is the per-seat portion of the game state
type SeatState struct {
	Seat  Seat
	Hand  []deck.Card
	Score int
	Stood bool
}

func (s *SeatState) clone() *SeatState {
	cp := *s
	cp.Hand = cloneHand(s.Hand)
	return &cp
}

func cloneHand(hand []deck.Card) []deck.Card {
	if hand == nil {
		return nil
	}
	cp := make([]deck.Card, len(hand))
	copy(cp, hand)
	return cp
}
