// Package game implements the four-seat power-card Blackjack engine.
//
// The main type is Table, which owns the game state: the shared draw pile,
// every seat's hand, the score ledger and the turn rotation. Everything
// else in the package is pure rules code that reads state and returns
// values for the Table to commit.
//
// # Basic Usage
//
//	t := game.NewTable(game.WithLogger(logger))
//	_ = t.StartRound(game.RoundConfig{Suits: deck.Standard})
//	// automated seats play on the table's clock; the human seat acts with
//	_ = t.Hit()
//	_ = t.Stand()
//	_, _ = t.UsePowerCard(game.Swap, game.AI)
//	snap := t.Snapshot()
//
// # Deterministic Testing
//
// Pass a quartz mock clock and a seeded RNG, then step through the delayed
// transitions:
//
//	clock := quartz.NewMock(t)
//	table := game.NewTable(game.WithClock(clock), game.WithRNG(randutil.New(42)))
//	_, w := clock.AdvanceNext()
//	w.MustWait(ctx)
//
// WithPile deals from a prepared pile for exact hands.
//
// # Architecture
//
//   - HandValue, Decide: hand valuation and the automated seats' policy
//   - DrawHit, ResolvePowerCard, Settle: compute Patches and Settlements
//   - Table: applies them, runs the rotation and publishes GameEvents
package game
