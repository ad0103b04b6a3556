package game

import (
	"context"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/powerjack/internal/deck"
	"github.com/lox/powerjack/internal/randutil"
	"github.com/stretchr/testify/require"
)

// eventRecorder captures published events
type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) ofType(et EventType) []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

type testTable struct {
	*Table
	clock  *quartz.Mock
	events *eventRecorder
	ctx    context.Context
}

// newTestTable builds a table on a mock clock with a fixed seed
func newTestTable(t *testing.T, opts ...TableOption) *testTable {
	t.Helper()

	clock := quartz.NewMock(t)
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	base := []TableOption{
		WithClock(clock),
		WithRNG(randutil.New(42)),
		WithLogger(log.New(io.Discard)),
		WithEventBus(bus),
	}
	table := NewTable(append(base, opts...)...)
	t.Cleanup(table.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return &testTable{Table: table, clock: clock, events: rec, ctx: ctx}
}

// step fires the next scheduled transition and waits for it to finish
func (tt *testTable) step(t *testing.T) {
	t.Helper()
	require.NotZero(t, tt.Snapshot().Pending, "no transition pending")
	_, w := tt.clock.AdvanceNext()
	w.MustWait(tt.ctx)
}

// stackedPile returns a standard-config pile that deals cards in the order given
func stackedPile(cards string) *deck.Pile {
	order := deck.MustParseCards(cards)
	slices.Reverse(order)
	return deck.NewPileFromCards(order, deck.Standard, randutil.New(1), deck.Fallback)
}

// standing is a policy under which every automated seat stands at once
func standing([]deck.Card, Seat) Decision { return Stand }
