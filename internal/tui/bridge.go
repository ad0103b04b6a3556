package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/powerjack/internal/game"
)

// subscriptionBuffer bounds how many events may queue while the UI is busy
const subscriptionBuffer = 256

// EventMsg carries a table event into the bubbletea update loop
type EventMsg struct {
	Event game.GameEvent
}

// Subscription queues table events for the UI. Table methods publish
// synchronously and may be called from inside Update, so delivery never
// blocks: when the queue is full the event is dropped, which only costs an
// activity line since every message re-reads the table snapshot.
type Subscription struct {
	events chan game.GameEvent
	logger *log.Logger
}

// Subscribe registers a new subscription on bus
func Subscribe(bus game.EventBus, logger *log.Logger) *Subscription {
	s := &Subscription{
		events: make(chan game.GameEvent, subscriptionBuffer),
		logger: logger.WithPrefix("tui"),
	}
	bus.Subscribe(s)
	return s
}

// OnEvent implements game.EventSubscriber
func (s *Subscription) OnEvent(event game.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("Dropped table event, UI is behind", "type", event.EventType())
	}
}

// Wait returns a command that delivers the next queued event
func (s *Subscription) Wait() tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: <-s.events}
	}
}
