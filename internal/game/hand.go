package game

import "github.com/lox/powerjack/internal/deck"

const (
	// BlackjackValue is the best possible hand value
	BlackjackValue = 21
	softAceBonus   = 10
)

// HandValue computes the blackjack value of a hand. Aces start at 11 and
// are reduced to 1 one at a time while the total exceeds 21. An empty hand
// is worth 0. Only the rank is read, so cards without a valid rank count
// for nothing and a missing suit is ignored.
func HandValue(hand []deck.Card) int {
	total, _ := valueAndSoftAces(hand)
	return total
}

// IsBust reports whether the hand value exceeds 21
func IsBust(hand []deck.Card) bool {
	return HandValue(hand) > BlackjackValue
}

// IsSoft reports whether at least one ace is still counted as 11
func IsSoft(hand []deck.Card) bool {
	_, soft := valueAndSoftAces(hand)
	return soft > 0
}

// IsBlackjack reports a two-card 21
func IsBlackjack(hand []deck.Card) bool {
	return len(hand) == 2 && HandValue(hand) == BlackjackValue
}

func valueAndSoftAces(hand []deck.Card) (int, int) {
	total, aces := 0, 0
	for _, card := range hand {
		// the suit plays no part in the value
		points := card.Rank.Points()
		if points == 0 {
			continue
		}
		total += points
		if card.IsAce() {
			aces++
		}
	}

	for total > BlackjackValue && aces > 0 {
		total -= softAceBonus
		aces--
	}
	return total, aces
}

// SanitizeHand returns the hand without malformed cards. Rendering code
// runs hands through it before display.
func SanitizeHand(hand []deck.Card) []deck.Card {
	out := make([]deck.Card, 0, len(hand))
	for _, card := range hand {
		if card.Valid() {
			out = append(out, card)
		}
	}
	return out
}
