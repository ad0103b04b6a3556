package game

import (
	"fmt"
	"strings"

	"github.com/lox/powerjack/internal/deck"
)

// Round log lines. The human seat reads in the second person.

const (
	logRoundStarted = "Round started! Take turns to hit or stand in order."
	logRoundReset   = "Start a new round."
	logSettled      = "Round over! Scores updated by ranking."
	logGameOver     = "Game over: a seat's score dropped below 0."
)

func formatHit(seat Seat) string {
	if seat.IsHuman() {
		return "You hit."
	}
	return seat.DisplayName() + " hits."
}

func formatBonusCard(seat Seat) string {
	return seat.DisplayName() + " received a power card."
}

func formatStand(seat Seat) string {
	if seat.IsHuman() {
		return "You stand."
	}
	return seat.DisplayName() + " stands."
}

func formatPowerCard(actor Seat, card PowerCard) string {
	return fmt.Sprintf("%s used power card: %s", actor.DisplayName(), card.Name)
}

func formatSettled() string {
	return logSettled
}

func formatRanking(ranking []Seat) string {
	parts := make([]string, len(ranking))
	for i, seat := range ranking {
		parts[i] = fmt.Sprintf("%d.%s", i+1, seat)
	}
	return "Ranking: " + strings.Join(parts, ", ")
}

func formatNewGame(startingScore int) string {
	return fmt.Sprintf("New game! Every score is back to %d.", startingScore)
}

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowCards   bool // include drawn cards (hidden from the TUI status line)
	Perspective Seat // seat rendered in the second person
}

// EventFormatter renders events as single human-readable lines
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any event. Unknown event types yield their type name.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return fmt.Sprintf("Round %d (%s) started with %s x%d, %d cards left",
			e.Round, e.RoundID, e.Config.Suits, e.Config.Repeat, e.PileSize)
	case TurnChangeEvent:
		return fmt.Sprintf("%s to act", ef.name(e.Seat))
	case CardsDrawnEvent:
		line := fmt.Sprintf("%s drew %d cards (hand %d)", ef.name(e.Seat), len(e.Cards), e.Value)
		if ef.opts.ShowCards {
			line += " [" + ef.formatCards(e.Cards) + "]"
		}
		if e.Fallbacks > 0 {
			line += fmt.Sprintf(", %d from an empty pile", e.Fallbacks)
		}
		if e.Reshuffled {
			line += ", pile reshuffled"
		}
		return line
	case SeatStoodEvent:
		return fmt.Sprintf("%s stood on %d", ef.name(e.Seat), e.Value)
	case PowerCardEvent:
		if e.Target != "" {
			return fmt.Sprintf("%s played %s on %s", ef.name(e.Actor), e.Card.Name, ef.name(e.Target))
		}
		return fmt.Sprintf("%s played %s", ef.name(e.Actor), e.Card.Name)
	case RoundSettledEvent:
		return ef.FormatSettlement(e.Settlement)
	case GameOverEvent:
		return fmt.Sprintf("Game over after %d rounds", e.Rounds)
	case RoundResetEvent:
		if e.NewGame {
			return "New game"
		}
		return "Round reset"
	case TurnErrorEvent:
		return fmt.Sprintf("%s turn failed: %v", ef.name(e.Seat), e.Err)
	default:
		return event.EventType().String()
	}
}

// FormatSettlement renders per-seat results in seat order
func (ef *EventFormatter) FormatSettlement(s Settlement) string {
	parts := make([]string, 0, len(Seats))
	for _, seat := range Seats {
		res, ok := s.Results[seat]
		if !ok {
			continue
		}
		outcome := fmt.Sprintf("#%d", res.Rank)
		if res.Bust {
			outcome = "bust"
		}
		parts = append(parts, fmt.Sprintf("%s %d %s %+d", ef.name(seat), res.Value, outcome, res.Delta()))
	}
	return "Settled: " + strings.Join(parts, ", ")
}

func (ef *EventFormatter) name(seat Seat) string {
	if ef.opts.Perspective != "" && seat == ef.opts.Perspective {
		return "You"
	}
	if seat == Player {
		return "Player"
	}
	return seat.DisplayName()
}

func (ef *EventFormatter) formatCards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		formatted = append(formatted, card.String())
	}
	return strings.Join(formatted, " ")
}
