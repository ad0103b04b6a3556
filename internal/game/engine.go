package game

import (
	"fmt"
	"time"

	"github.com/lox/powerjack/internal/scheduler"
)

// evaluate drives the rotation until it has to wait for the human seat, a
// scheduled transition, or the end of the round. Callers hold t.mu.
func (t *Table) evaluate() {
	for {
		if t.state.Status != Playing || t.state.GameOver {
			return
		}
		if t.state.AllStood() {
			t.settle()
			return
		}
		if t.state.Processing {
			return
		}

		current := t.state.Current
		if t.state.Seats[current].Stood {
			t.advance()
			continue
		}
		if current.IsHuman() {
			return
		}
		if !t.automatedStep(current) {
			return
		}
	}
}

// automatedStep plays one decision for an automated seat. It returns true
// when the rotation can keep going without waiting.
func (t *Table) automatedStep(seat Seat) (proceed bool) {
	defer func() {
		if r := recover(); r != nil {
			t.stepFailed(seat, fmt.Errorf("%w: %s: %v", ErrTurnFailed, seat, r))
			proceed = false
		}
	}()

	hand := cloneHand(t.state.Seats[seat].Hand)
	switch t.policy(hand, seat) {
	case Hit:
		t.state.Processing = true
		think := scheduler.RandomBetween(t.rng, t.pacing.ThinkMin, t.pacing.ThinkMax)
		t.roundLogger.Debug("Seat thinking", "seat", seat, "value", HandValue(hand), "delay", think)
		t.schedule(think, "think:"+seat.String(), func() {
			t.hit(seat)
			t.schedule(t.pacing.HitPause, "advance:"+seat.String(), t.finishTurn)
		})
		return false
	default:
		t.stand(seat)
		t.advance()
		return true
	}
}

// finishTurn ends a paced turn: rotation moves on and the guard is released
func (t *Table) finishTurn() {
	t.advance()
	t.state.Processing = false
}

// schedule runs fn after d under the table lock, then re-evaluates. The
// transition does nothing if a round start, reset or close happened in
// between, and only releases the guard if the round stopped playing.
func (t *Table) schedule(d time.Duration, name string, fn func()) {
	epoch := t.epoch
	t.sched.After(d, name, func() {
		t.mu.Lock()
		defer t.unlockAndPublish()

		if epoch != t.epoch {
			return
		}
		if t.state.Status != Playing || t.state.GameOver {
			t.state.Processing = false
			return
		}
		if !t.runStep(name, fn) {
			return
		}
		t.evaluate()
	})
}

// runStep calls fn, recovering a panic into a turn error
func (t *Table) runStep(name string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t.stepFailed(t.state.Current, fmt.Errorf("%w: %s: %v", ErrTurnFailed, name, r))
			ok = false
		}
	}()
	fn()
	return true
}

// stepFailed releases the guard, reports the failure and retries the
// rotation after a hit pause
func (t *Table) stepFailed(seat Seat, err error) {
	t.state.Processing = false
	t.roundLogger.Error("Automated turn failed", "seat", seat, "error", err)
	t.emit(TurnErrorEvent{Seat: seat, Err: err, timestamp: t.clock.Now()})
	t.schedule(t.pacing.HitPause, "retry", func() {})
}

// advance moves the rotation to the next seat
func (t *Table) advance() {
	t.state.Current = NextSeat(t.state.Current)
	t.emit(TurnChangeEvent{Seat: t.state.Current, timestamp: t.clock.Now()})
}

// hit draws a base card and a bonus card into seat's hand
func (t *Table) hit(seat Seat) {
	before := len(t.state.Seats[seat].Hand)
	reshuffles := t.pile.Reshuffles()
	patch := DrawHit(t.pile, seat, t.state.Seats[seat].Hand)
	t.state.Apply(patch)
	reshuffled := t.pile.Reshuffles() > reshuffles

	hand := t.state.Seats[seat].Hand
	drawn := cloneHand(hand[before:])
	value := HandValue(hand)
	if reshuffled {
		t.roundLogger.Info("Pile exhausted, reshuffled", "seat", seat, "pile", t.pile.Remaining())
	}
	if patch.Fallbacks > 0 {
		t.roundLogger.Warn("Pile exhausted, dealt fallback card", "seat", seat, "count", patch.Fallbacks)
	}
	t.roundLogger.Info("Seat hit", "seat", seat, "cards", drawn, "value", value)
	t.emit(CardsDrawnEvent{Seat: seat, Cards: drawn, Value: value, Fallbacks: patch.Fallbacks, Reshuffled: reshuffled, timestamp: t.clock.Now()})
}

// stand marks seat as stood for the rest of the round
func (t *Table) stand(seat Seat) {
	t.state.Apply(StandPatch(seat))
	value := HandValue(t.state.Seats[seat].Hand)
	t.roundLogger.Info("Seat stood", "seat", seat, "value", value)
	t.emit(SeatStoodEvent{Seat: seat, Value: value, timestamp: t.clock.Now()})
}

// settle scores the round once every seat has stood
func (t *Table) settle() {
	settlement := Settle(t.state.Hands(), t.state.Scores())
	t.state.Apply(settlement.Patch())

	t.state.Status = Finished
	t.state.Seats[Dealer].Stood = true
	t.state.Current = ""
	t.state.Processing = false
	t.sched.CancelAll()

	t.roundLogger.Info("Round settled", "ranking", settlement.Ranking, "scores", settlement.Scores())
	t.emit(RoundSettledEvent{RoundID: t.state.RoundID, Settlement: settlement, timestamp: t.clock.Now()})
	t.checkGameOver()
}

// checkGameOver ends the game as soon as any score is negative
func (t *Table) checkGameOver() {
	if t.state.GameOver || !t.state.AnyNegative() {
		return
	}

	t.state.GameOver = true
	t.state.Status = Finished
	t.state.Current = ""
	t.state.Processing = false
	t.state.Log = append(t.state.Log, logGameOver)
	t.sched.CancelAll()

	scores := t.state.Scores()
	t.roundLogger.Info("Game over", "scores", scores, "rounds", t.state.Round)
	t.emit(GameOverEvent{Scores: scores, Rounds: t.state.Round, timestamp: t.clock.Now()})
}
