package game

import "github.com/lox/powerjack/internal/deck"

// Decision is the outcome of a seat's turn
type Decision int

const (
	Stand Decision = iota
	Hit
)

// String returns the string representation of a decision
func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// Policy decides whether the seat holding hand hits or stands. Policies
// must be pure.
type Policy func(hand []deck.Card, seat Seat) Decision

// Seat thresholds: a seat hits while its hand value is below its threshold.
const (
	DealerThreshold = 17
	AIThreshold     = 15
	AI2Threshold    = 19
)

// Threshold returns the hit threshold for a seat. Unknown seats, including
// the human seat, use the dealer's threshold.
func Threshold(seat Seat) int {
	switch seat {
	case AI:
		return AIThreshold
	case AI2:
		return AI2Threshold
	default:
		return DealerThreshold
	}
}

// Decide is the scripted policy used for the AI seats and the dealer
func Decide(hand []deck.Card, seat Seat) Decision {
	if HandValue(hand) < Threshold(seat) {
		return Hit
	}
	return Stand
}
