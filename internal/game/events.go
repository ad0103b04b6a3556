package game

import (
	"sync"
	"time"

	"github.com/lox/powerjack/internal/deck"
)

// GameEvent represents anything observable that happens at the table
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published after the opening deal
type RoundStartEvent struct {
	RoundID   string
	Round     int
	Config    RoundConfig
	PileSize  int
	Reshuffle bool // a fresh pile was built for this round
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// TurnChangeEvent is published when rotation moves to another seat
type TurnChangeEvent struct {
	Seat      Seat
	timestamp time.Time
}

func (e TurnChangeEvent) EventType() EventType { return EventTypeTurnChange }
func (e TurnChangeEvent) Timestamp() time.Time { return e.timestamp }

// CardsDrawnEvent is published when a seat hits
type CardsDrawnEvent struct {
	Seat       Seat
	Cards      []deck.Card // base card then bonus card
	Value      int         // hand value after the draw
	Fallbacks  int
	Reshuffled bool // the pile ran dry and was rebuilt during the draw
	timestamp  time.Time
}

func (e CardsDrawnEvent) EventType() EventType { return EventTypeCardsDrawn }
func (e CardsDrawnEvent) Timestamp() time.Time { return e.timestamp }

// SeatStoodEvent is published when a seat stands
type SeatStoodEvent struct {
	Seat      Seat
	Value     int
	timestamp time.Time
}

func (e SeatStoodEvent) EventType() EventType { return EventTypeSeatStood }
func (e SeatStoodEvent) Timestamp() time.Time { return e.timestamp }

// PowerCardEvent is published when a power card takes effect
type PowerCardEvent struct {
	Actor     Seat
	Target    Seat
	Card      PowerCard
	timestamp time.Time
}

func (e PowerCardEvent) EventType() EventType { return EventTypePowerCard }
func (e PowerCardEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent is published once all seats have stood and scores are committed
type RoundSettledEvent struct {
	RoundID    string
	Settlement Settlement
	timestamp  time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when a score drops below zero
type GameOverEvent struct {
	Scores    map[Seat]int
	Rounds    int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// RoundResetEvent is published by ResetRound and NewGame
type RoundResetEvent struct {
	NewGame   bool
	timestamp time.Time
}

func (e RoundResetEvent) EventType() EventType { return EventTypeRoundReset }
func (e RoundResetEvent) Timestamp() time.Time { return e.timestamp }

// TurnErrorEvent is published when an automated step fails
type TurnErrorEvent struct {
	Seat      Seat
	Err       error
	timestamp time.Time
}

func (e TurnErrorEvent) EventType() EventType { return EventTypeTurnError }
func (e TurnErrorEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Publishing
// is synchronous, in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers are not comparable and cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
