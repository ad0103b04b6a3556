package game

import (
	"sort"

	"github.com/lox/powerjack/internal/deck"
)

// Score deltas applied at settlement
const (
	BustPenalty    = -1
	ExactTwentyOne = 1
)

// rankDeltas holds the score change for each finishing place among non-bust seats
var rankDeltas = []int{1, 0, -1, -2}

// SeatResult is one seat's settlement outcome
type SeatResult struct {
	Seat     Seat
	Value    int
	Bust     bool
	Rank     int // 1-based among non-bust seats, 0 when bust
	OldScore int
	NewScore int
}

// Delta returns the score change for the seat
func (r SeatResult) Delta() int {
	return r.NewScore - r.OldScore
}

// Settlement is the outcome of a completed round
type Settlement struct {
	Results map[Seat]SeatResult
	// Ranking lists non-bust seats, best first
	Ranking []Seat
	Log     []string
}

// Settle ranks the hands and computes new scores. Bust seats lose one point
// and are not ranked. Non-bust seats are ranked by hand value, ties broken
// by seat name, and receive +1 (+2 with exactly 21), 0, -1 and -2.
func Settle(hands map[Seat][]deck.Card, scores map[Seat]int) Settlement {
	s := Settlement{Results: make(map[Seat]SeatResult, len(Seats))}

	var standing []Seat
	for _, seat := range Seats {
		value := HandValue(hands[seat])
		res := SeatResult{
			Seat:     seat,
			Value:    value,
			Bust:     value > BlackjackValue,
			OldScore: scores[seat],
			NewScore: scores[seat],
		}
		if res.Bust {
			res.NewScore += BustPenalty
		} else {
			standing = append(standing, seat)
		}
		s.Results[seat] = res
	}

	sort.SliceStable(standing, func(i, j int) bool {
		vi, vj := s.Results[standing[i]].Value, s.Results[standing[j]].Value
		if vi != vj {
			return vi > vj
		}
		return standing[i] < standing[j]
	})

	for i, seat := range standing {
		res := s.Results[seat]
		res.Rank = i + 1
		if i < len(rankDeltas) {
			res.NewScore += rankDeltas[i]
		}
		if i == 0 && res.Value == BlackjackValue {
			res.NewScore += ExactTwentyOne
		}
		s.Results[seat] = res
	}

	s.Ranking = standing
	s.Log = append(s.Log, formatSettled())
	if len(standing) > 0 {
		s.Log = append(s.Log, formatRanking(standing))
	}
	return s
}

// Patch converts the settlement into score deltas and log lines
func (s Settlement) Patch() Patch {
	p := Patch{Scores: make(map[Seat]int, len(s.Results)), Log: append([]string(nil), s.Log...)}
	for seat, res := range s.Results {
		if d := res.Delta(); d != 0 {
			p.Scores[seat] = d
		}
	}
	return p
}

// Scores returns the post-settlement score ledger
func (s Settlement) Scores() map[Seat]int {
	out := make(map[Seat]int, len(s.Results))
	for seat, res := range s.Results {
		out[seat] = res.NewScore
	}
	return out
}
