package game

import (
	"github.com/lox/powerjack/internal/deck"
)

// Status is the round state machine: betting -> playing -> finished
type Status int

const (
	Betting Status = iota
	Playing
	Finished
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Betting:
		return "betting"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the game-state aggregate. The Table is its only writer; rules
// code reads it and proposes Patches.
type State struct {
	Status     Status
	Current    Seat // empty when no seat is active
	Processing bool
	GameOver   bool
	Seats      map[Seat]*SeatState
	Log        []string
	RoundID    string
	Round      int
}

func newState(startingScore int) State {
	seats := make(map[Seat]*SeatState, len(Seats))
	for _, seat := range Seats {
		seats[seat] = &SeatState{Seat: seat, Score: startingScore}
	}
	return State{Status: Betting, Seats: seats}
}

// Hands returns a copy of every seat's hand
func (s *State) Hands() map[Seat][]deck.Card {
	hands := make(map[Seat][]deck.Card, len(s.Seats))
	for seat, st := range s.Seats {
		hands[seat] = cloneHand(st.Hand)
	}
	return hands
}

// Scores returns a copy of the score ledger
func (s *State) Scores() map[Seat]int {
	scores := make(map[Seat]int, len(s.Seats))
	for seat, st := range s.Seats {
		scores[seat] = st.Score
	}
	return scores
}

// AllStood reports whether every seat has stood this round
func (s *State) AllStood() bool {
	for _, seat := range Seats {
		if !s.Seats[seat].Stood {
			return false
		}
	}
	return true
}

// AnyNegative reports whether any seat's score is below zero
func (s *State) AnyNegative() bool {
	for _, st := range s.Seats {
		if st.Score < 0 {
			return true
		}
	}
	return false
}

// Patch is a proposed change to the game state produced by a rules
// component. Applying it is the Table's job.
type Patch struct {
	// Hands replaces whole hands
	Hands map[Seat][]deck.Card
	// Scores holds score deltas
	Scores map[Seat]int
	// Stood marks seats as stood
	Stood []Seat
	// Log lines appended in order
	Log []string
	// Fallbacks counts cards dealt from an exhausted pile
	Fallbacks int
}

// Empty reports whether the patch changes nothing
func (p Patch) Empty() bool {
	return len(p.Hands) == 0 && len(p.Scores) == 0 && len(p.Stood) == 0 && len(p.Log) == 0
}

// Apply commits a patch to the state
func (s *State) Apply(p Patch) {
	for seat, hand := range p.Hands {
		if st, ok := s.Seats[seat]; ok {
			st.Hand = cloneHand(hand)
		}
	}
	for seat, delta := range p.Scores {
		if st, ok := s.Seats[seat]; ok {
			st.Score += delta
		}
	}
	for _, seat := range p.Stood {
		if st, ok := s.Seats[seat]; ok {
			st.Stood = true
		}
	}
	s.Log = append(s.Log, p.Log...)
}

// DrawHit draws the base card plus the bonus power card every hit earns.
// The pile is consumed directly; the hand change is returned as a patch.
func DrawHit(pile *deck.Pile, seat Seat, hand []deck.Card) Patch {
	p := Patch{Hands: make(map[Seat][]deck.Card, 1)}

	next := cloneHand(hand)
	for i := 0; i < 2; i++ {
		card, fromPile := pile.Draw()
		if !fromPile {
			p.Fallbacks++
		}
		next = append(next, card)
	}

	p.Hands[seat] = next
	p.Log = append(p.Log, formatHit(seat), formatBonusCard(seat))
	return p
}

// StandPatch marks seat as stood
func StandPatch(seat Seat) Patch {
	return Patch{Stood: []Seat{seat}, Log: []string{formatStand(seat)}}
}
