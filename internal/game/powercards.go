package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/powerjack/internal/deck"
)

// ErrUnknownPowerCard is returned for ids outside the catalog
var ErrUnknownPowerCard = errors.New("unknown power card")

// PowerCardID identifies a power card in the catalog
type PowerCardID string

const (
	Shield       PowerCardID = "shield"
	Swap         PowerCardID = "swap"
	Withdraw     PowerCardID = "withdraw"
	ExtraPenalty PowerCardID = "extra-penalty"
)

// Scope describes who a power card acts on
type Scope string

const (
	// ScopeSelf acts on the user only
	ScopeSelf Scope = "self"
	// ScopeTarget needs another seat
	ScopeTarget Scope = "target"
	// ScopeSelfTarget needs a seat, which may be the user
	ScopeSelfTarget Scope = "self-target"
	// ScopeGlobal acts on every seat
	ScopeGlobal Scope = "global"
)

// PowerCard is a catalog entry
type PowerCard struct {
	ID          PowerCardID
	Name        string
	Description string
	Scope       Scope
}

// NeedsTarget reports whether the card requires a target seat
func (c PowerCard) NeedsTarget() bool {
	return c.Scope == ScopeTarget || c.Scope == ScopeSelfTarget
}

var catalog = []PowerCard{
	{ID: Shield, Name: "Shield", Description: "Gain one point", Scope: ScopeSelf},
	{ID: Swap, Name: "Swap", Description: "Swap your newest card with another seat's newest card", Scope: ScopeTarget},
	{ID: Withdraw, Name: "Withdraw", Description: "Take back the newest card of any hand", Scope: ScopeSelfTarget},
	{ID: ExtraPenalty, Name: "Extra Penalty", Description: "Every seat loses one point", Scope: ScopeGlobal},
}

// PowerCards returns the catalog in display order
func PowerCards() []PowerCard {
	out := make([]PowerCard, len(catalog))
	copy(out, catalog)
	return out
}

// LookupPowerCard finds a catalog entry by id
func LookupPowerCard(id PowerCardID) (PowerCard, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return PowerCard{}, false
}

// ParsePowerCardID parses a power card id (case-insensitive)
func ParsePowerCardID(s string) (PowerCardID, error) {
	id := PowerCardID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := LookupPowerCard(id); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPowerCard, s)
	}
	return id, nil
}

// ResolvePowerCard computes the effect of actor playing card id against
// target (empty when none). It returns ok=false and an empty patch when the
// card needs a target and none, or an invalid one, was given; that is a
// silent rejection rather than an error.
func ResolvePowerCard(hands map[Seat][]deck.Card, id PowerCardID, actor, target Seat) (Patch, bool, error) {
	card, found := LookupPowerCard(id)
	if !found {
		return Patch{}, false, fmt.Errorf("%w: %q", ErrUnknownPowerCard, id)
	}
	if !actor.Valid() {
		return Patch{}, false, nil
	}

	var p Patch
	switch card.Scope {
	case ScopeTarget:
		if !target.Valid() || target == actor {
			return Patch{}, false, nil
		}
	case ScopeSelfTarget:
		if !target.Valid() {
			return Patch{}, false, nil
		}
	}

	switch card.ID {
	case Shield:
		p.Scores = map[Seat]int{actor: 1}

	case Swap:
		own, theirs := hands[actor], hands[target]
		if len(own) > 0 && len(theirs) > 0 {
			newOwn, newTheirs := cloneHand(own), cloneHand(theirs)
			newOwn[len(newOwn)-1], newTheirs[len(newTheirs)-1] = theirs[len(theirs)-1], own[len(own)-1]
			p.Hands = map[Seat][]deck.Card{actor: newOwn, target: newTheirs}
		}

	case Withdraw:
		if hand := hands[target]; len(hand) > 0 {
			p.Hands = map[Seat][]deck.Card{target: cloneHand(hand[:len(hand)-1])}
		}

	case ExtraPenalty:
		// Applies to every seat whether or not it busts.
		p.Scores = make(map[Seat]int, len(Seats))
		for _, seat := range Seats {
			p.Scores[seat] = -1
		}
	}

	p.Log = append(p.Log, formatPowerCard(actor, card))
	return p, true, nil
}
