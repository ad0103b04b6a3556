package game

import (
	"errors"
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/powerjack/internal/config"
	"github.com/lox/powerjack/internal/deck"
	"github.com/lox/powerjack/internal/gameid"
	"github.com/lox/powerjack/internal/randutil"
	"github.com/lox/powerjack/internal/scheduler"
)

// Errors returned by user actions. None of them change the game state.
var (
	ErrGameOver        = errors.New("game is over")
	ErrRoundNotActive  = errors.New("no round in progress")
	ErrRoundInProgress = errors.New("round already in progress")
	ErrNotPlayersTurn  = errors.New("not the player's turn")
	ErrTurnInProgress  = errors.New("a turn transition is pending")
	ErrTurnFailed      = errors.New("automated turn failed")
)

// RoundConfig selects the pile a round is dealt from
type RoundConfig struct {
	Suits  deck.SuitConfig
	Repeat int
}

// DefaultRoundConfig is one standard 52-card set
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{Suits: deck.Standard, Repeat: deck.MinRepeat}
}

// Normalize fills in defaults and clamps the repeat count. The standard
// configuration always uses a repeat of one.
func (c RoundConfig) Normalize() RoundConfig {
	if c.Suits == "" {
		c.Suits = deck.Standard
	}
	c.Repeat = deck.ClampRepeat(c.Repeat)
	if !c.Suits.SingleSuit() {
		c.Repeat = deck.MinRepeat
	}
	return c
}

// Table owns the game state and runs the turn rotation. All mutation
// happens under one mutex; events are published after it is released.
type Table struct {
	mu     sync.Mutex
	state  State
	pile   *deck.Pile
	config RoundConfig
	epoch  uint64
	outbox []GameEvent

	startingScore int
	minPileSize   int
	emptyPolicy   deck.EmptyPolicy
	pacing        config.Pacing
	policy        Policy

	clock       quartz.Clock
	sched       *scheduler.Scheduler
	rng         *rand.Rand
	ids         *gameid.Generator
	logger      *log.Logger
	roundLogger *log.Logger
	bus         EventBus
}

// TableOption configures a Table
type TableOption func(*Table)

// WithClock sets the clock driving every delayed transition
func WithClock(clock quartz.Clock) TableOption {
	return func(t *Table) { t.clock = clock }
}

// WithRNG sets the random source used for shuffles, think delays and round ids
func WithRNG(rng *rand.Rand) TableOption {
	return func(t *Table) { t.rng = rng }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// WithEventBus sets the bus events are published on
func WithEventBus(bus EventBus) TableOption {
	return func(t *Table) { t.bus = bus }
}

// WithPacing sets the transition delays
func WithPacing(p config.Pacing) TableOption {
	return func(t *Table) { t.pacing = p }
}

// WithStartingScore sets the score every seat starts (and restarts) with
func WithStartingScore(score int) TableOption {
	return func(t *Table) { t.startingScore = score }
}

// WithMinPileSize sets the pile size below which a round start builds a new pile
func WithMinPileSize(n int) TableOption {
	return func(t *Table) { t.minPileSize = n }
}

// WithEmptyPolicy sets what an exhausted pile deals
func WithEmptyPolicy(p deck.EmptyPolicy) TableOption {
	return func(t *Table) { t.emptyPolicy = p }
}

// WithPile seeds the table with an existing pile. It is kept for the next
// round as long as that round uses the pile's configuration.
func WithPile(p *deck.Pile) TableOption {
	return func(t *Table) {
		suits, repeat := p.Config()
		t.pile = p
		t.config = RoundConfig{Suits: suits, Repeat: repeat}.Normalize()
	}
}

// WithPolicy replaces the decision policy of the automated seats
func WithPolicy(p Policy) TableOption {
	return func(t *Table) { t.policy = p }
}

// WithConfig applies the game and pacing settings of a loaded configuration
func WithConfig(cfg *config.Config) TableOption {
	return func(t *Table) {
		t.startingScore = cfg.Game.StartingScore
		t.minPileSize = cfg.Game.MinPileSize
		t.emptyPolicy = cfg.Game.EmptyPile
		t.pacing = cfg.Pacing
	}
}

// NewTable creates a table in the betting state with every seat at the
// starting score
func NewTable(opts ...TableOption) *Table {
	defaults := config.Default()
	t := &Table{
		config:        DefaultRoundConfig(),
		startingScore: defaults.Game.StartingScore,
		minPileSize:   defaults.Game.MinPileSize,
		emptyPolicy:   defaults.Game.EmptyPile,
		pacing:        defaults.Pacing,
		policy:        Decide,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.clock == nil {
		t.clock = quartz.NewReal()
	}
	if t.rng == nil {
		t.rng = randutil.New(0)
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	if t.bus == nil {
		t.bus = NewEventBus()
	}

	t.logger = t.logger.WithPrefix("table")
	t.roundLogger = t.logger
	t.sched = scheduler.New(t.clock, t.logger)
	t.ids = gameid.NewGenerator(t.rng, func() time.Time { return t.clock.Now() })
	t.state = newState(t.startingScore)
	return t
}

// EventBus returns the bus table events are published on
func (t *Table) EventBus() EventBus {
	return t.bus
}

// Close cancels every pending transition
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.sched.CancelAll()
}

func (t *Table) emit(event GameEvent) {
	t.outbox = append(t.outbox, event)
}

// unlockAndPublish releases the table and then delivers queued events
func (t *Table) unlockAndPublish() {
	events := t.outbox
	t.outbox = nil
	t.mu.Unlock()

	for _, event := range events {
		t.bus.Publish(event)
	}
}

// SeatView is a read-only copy of one seat
type SeatView struct {
	Seat  Seat
	Hand  []deck.Card
	Value int
	Score int
	Stood bool
	Bust  bool
	// Soft is set while an ace still counts as 11
	Soft      bool
	Blackjack bool // two-card 21
}

// Snapshot is a read-only copy of the table state
type Snapshot struct {
	Status     Status
	Current    Seat
	Seats      []SeatView // deal order
	GameOver   bool
	Processing bool
	Log        []string
	PileSize   int
	Config     RoundConfig
	RoundID    string
	Round      int
	Pending    int    // scheduled transitions
	Next       string // name of the transition due first, if any
}

// Seat returns the view of one seat
func (s Snapshot) Seat(seat Seat) SeatView {
	for _, v := range s.Seats {
		if v.Seat == seat {
			return v
		}
	}
	return SeatView{Seat: seat}
}

// Scores returns every seat's score
func (s Snapshot) Scores() map[Seat]int {
	out := make(map[Seat]int, len(s.Seats))
	for _, v := range s.Seats {
		out[v.Seat] = v.Score
	}
	return out
}

// PlayerCanAct reports whether Hit and Stand would currently be accepted
func (s Snapshot) PlayerCanAct() bool {
	return s.Status == Playing && !s.GameOver && !s.Processing && s.Current == Player && !s.Seat(Player).Stood
}

// Snapshot returns a copy of the current state
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		Status:     t.state.Status,
		Current:    t.state.Current,
		GameOver:   t.state.GameOver,
		Processing: t.state.Processing,
		Log:        append([]string(nil), t.state.Log...),
		Config:     t.config,
		RoundID:    t.state.RoundID,
		Round:      t.state.Round,
		Pending:    t.sched.Len(),
	}
	if t.pile != nil {
		snap.PileSize = t.pile.Remaining()
	}
	if pending := t.sched.Pending(); len(pending) > 0 {
		snap.Next = pending[0].Name
	}

	for _, seat := range Seats {
		st := t.state.Seats[seat].clone()
		value := HandValue(st.Hand)
		snap.Seats = append(snap.Seats, SeatView{
			Seat:  seat,
			Hand:  SanitizeHand(st.Hand),
			Value: value,
			Score: st.Score,
			Stood: st.Stood,
			Bust:  value > BlackjackValue,

			Soft:      IsSoft(st.Hand),
			Blackjack: IsBlackjack(st.Hand),
		})
	}
	return snap
}
