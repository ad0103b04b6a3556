package game

import (
	"fmt"

	"github.com/lox/powerjack/internal/deck"
)

// StartRound deals a new round from the betting or finished state. A fresh
// pile is built when there is none, when cfg differs from the previous
// round, or when fewer than the minimum pile size cards remain.
func (t *Table) StartRound(cfg RoundConfig) error {
	t.mu.Lock()
	defer t.unlockAndPublish()

	if t.state.GameOver {
		return ErrGameOver
	}
	if t.state.Status == Playing {
		return ErrRoundInProgress
	}

	cfg = cfg.Normalize()
	t.epoch++
	t.sched.CancelAll()

	rebuilt := t.pile == nil || cfg != t.config || t.pile.Remaining() < t.minPileSize
	if rebuilt {
		t.pile = deck.NewPile(cfg.Suits, cfg.Repeat, t.rng, t.emptyPolicy)
	}
	t.config = cfg

	t.state.Round++
	t.state.RoundID = t.ids.Generate()
	t.state.Status = Playing
	t.state.Processing = false
	t.state.Log = []string{logRoundStarted}
	for _, seat := range Seats {
		st := t.state.Seats[seat]
		st.Stood = false
		card, _ := t.pile.Draw()
		st.Hand = []deck.Card{card}
	}
	t.state.Current = Dealer

	t.roundLogger = t.logger.With("round", t.state.RoundID)
	t.roundLogger.Info("Round started",
		"number", t.state.Round,
		"suits", cfg.Suits,
		"repeat", cfg.Repeat,
		"rebuilt", rebuilt,
		"pile", t.pile.Remaining())

	now := t.clock.Now()
	t.emit(RoundStartEvent{
		RoundID:   t.state.RoundID,
		Round:     t.state.Round,
		Config:    cfg,
		PileSize:  t.pile.Remaining(),
		Reshuffle: rebuilt,
		timestamp: now,
	})
	t.emit(TurnChangeEvent{Seat: Dealer, timestamp: now})

	t.evaluate()
	return nil
}

// checkPlayerTurn reports why the human seat cannot hit or stand right now
func (t *Table) checkPlayerTurn() error {
	switch {
	case t.state.GameOver:
		return ErrGameOver
	case t.state.Status != Playing:
		return ErrRoundNotActive
	case t.state.Current != Player:
		return ErrNotPlayersTurn
	case t.state.Processing:
		return ErrTurnInProgress
	case t.state.Seats[Player].Stood:
		return ErrNotPlayersTurn
	}
	return nil
}

// Hit draws two cards for the human seat. The rotation moves on after the
// hit pause.
func (t *Table) Hit() error {
	t.mu.Lock()
	defer t.unlockAndPublish()

	if err := t.checkPlayerTurn(); err != nil {
		return err
	}

	t.hit(Player)
	t.state.Processing = true
	t.schedule(t.pacing.HitPause, "advance:player", t.finishTurn)
	return nil
}

// Stand ends the human seat's round. If everyone has now stood the round
// settles immediately, otherwise the rotation moves on after the stand pause.
func (t *Table) Stand() error {
	t.mu.Lock()
	defer t.unlockAndPublish()

	if err := t.checkPlayerTurn(); err != nil {
		return err
	}

	t.stand(Player)
	t.state.Processing = true
	t.schedule(t.pacing.StandPause, "advance:player", t.finishTurn)
	t.evaluate()
	return nil
}

// UsePowerCard plays a power card as the human seat. Cards are only
// accepted when Hit and Stand would be: on the player's own turn, before
// they stand and while no transition is pending. It returns false with a
// nil error when the card needs a target and none (or an invalid one) was
// given.
func (t *Table) UsePowerCard(id PowerCardID, target Seat) (bool, error) {
	t.mu.Lock()
	defer t.unlockAndPublish()

	if err := t.checkPlayerTurn(); err != nil {
		return false, err
	}

	patch, applied, err := ResolvePowerCard(t.state.Hands(), id, Player, target)
	if err != nil {
		return false, fmt.Errorf("failed to use power card: %w", err)
	}
	if !applied {
		t.roundLogger.Debug("Power card ignored", "card", id, "target", target)
		return false, nil
	}

	t.state.Apply(patch)
	card, _ := LookupPowerCard(id)
	t.roundLogger.Info("Power card used", "card", id, "target", target)
	if !card.NeedsTarget() {
		target = ""
	}
	t.emit(PowerCardEvent{Actor: Player, Target: target, Card: card, timestamp: t.clock.Now()})

	t.checkGameOver()
	return true, nil
}

// ResetRound abandons the current round and returns to betting. Scores and
// the game-over flag are kept.
func (t *Table) ResetRound() {
	t.mu.Lock()
	defer t.unlockAndPublish()

	t.epoch++
	t.sched.CancelAll()
	t.clearRound()
	t.state.Log = []string{logRoundReset}

	t.roundLogger.Info("Round reset")
	t.roundLogger = t.logger
	t.emit(RoundResetEvent{timestamp: t.clock.Now()})
}

// NewGame restarts play after a game over: every score returns to the
// starting score and the next round deals from a fresh pile.
func (t *Table) NewGame() {
	t.mu.Lock()
	defer t.unlockAndPublish()

	t.epoch++
	t.sched.CancelAll()
	t.state = newState(t.startingScore)
	t.state.Log = []string{formatNewGame(t.startingScore)}
	t.pile = nil

	t.logger.Info("New game", "starting_score", t.startingScore)
	t.roundLogger = t.logger
	t.emit(RoundResetEvent{NewGame: true, timestamp: t.clock.Now()})
}

func (t *Table) clearRound() {
	if !t.state.GameOver {
		t.state.Status = Betting
	}
	t.state.Current = ""
	t.state.Processing = false
	for _, st := range t.state.Seats {
		st.Hand = nil
		st.Stood = false
	}
}
