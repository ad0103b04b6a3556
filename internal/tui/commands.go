package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/powerjack/internal/deck"
	"github.com/lox/powerjack/internal/game"
)

// ErrUnknownCommand is returned for input that matches no command
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind identifies a parsed command
type CommandKind int

const (
	CmdHit CommandKind = iota
	CmdStand
	CmdPower
	CmdStart
	CmdReset
	CmdNewGame
	CmdHelp
	CmdQuit
)

// Command is a parsed line of user input
type Command struct {
	Kind   CommandKind
	Power  game.PowerCardID
	Target game.Seat
	Round  game.RoundConfig
}

// HelpText lists the available commands
const HelpText = "hit | stand | power <card> [seat] | start [suits] [repeat] | reset | new | quit"

// ParseCommand parses a line of input. defaults supplies the round
// configuration for a bare "start".
func ParseCommand(input string, defaults game.RoundConfig) (Command, error) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}
	args := parts[1:]

	switch parts[0] {
	case "hit", "h":
		return Command{Kind: CmdHit}, nil
	case "stand", "s":
		return Command{Kind: CmdStand}, nil
	case "power", "p":
		if len(args) == 0 {
			return Command{}, errors.New("usage: power <shield|swap|withdraw|extra-penalty> [seat]")
		}
		id, err := game.ParsePowerCardID(args[0])
		if err != nil {
			return Command{}, err
		}
		cmd := Command{Kind: CmdPower, Power: id}
		if len(args) > 1 {
			target, err := game.ParseSeat(args[1])
			if err != nil {
				return Command{}, err
			}
			cmd.Target = target
		}
		return cmd, nil
	case "start", "deal":
		round := defaults
		if len(args) > 0 {
			suits, err := deck.ParseSuitConfig(args[0])
			if err != nil {
				return Command{}, err
			}
			round.Suits = suits
		}
		if len(args) > 1 {
			round.Repeat = deck.ParseRepeatCount(args[1])
		}
		return Command{Kind: CmdStart, Round: round.Normalize()}, nil
	case "reset":
		return Command{Kind: CmdReset}, nil
	case "new", "restart":
		return Command{Kind: CmdNewGame}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
}
