package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeTurnChange   EventType = "turn_change"
	EventTypeCardsDrawn   EventType = "cards_drawn"
	EventTypeSeatStood    EventType = "seat_stood"
	EventTypePowerCard    EventType = "power_card"
	EventTypeRoundSettled EventType = "round_settled"
	EventTypeGameOver     EventType = "game_over"
	EventTypeRoundReset   EventType = "round_reset"
	EventTypeTurnError    EventType = "turn_error"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
