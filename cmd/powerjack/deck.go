package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/powerjack/internal/deck"
	"github.com/lox/powerjack/internal/randutil"
)

var (
	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
)

const cardsPerLine = 13

// DeckCmd prints a shuffled pile in draw order
type DeckCmd struct {
	Suits   string `default:"standard" help:"Suits: standard, clubs, diamonds, hearts or spades"`
	Repeat  int    `default:"1" help:"Repeat count for single-suit piles (1-10)"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	NoColor bool   `help:"Disable colored output"`
}

func (c *DeckCmd) Run() error {
	suits, err := deck.ParseSuitConfig(c.Suits)
	if err != nil {
		return err
	}

	pile := deck.NewPile(suits, c.Repeat, randutil.New(c.Seed), deck.Fallback)
	cfg, repeat := pile.Config()
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s x%d: %d cards", cfg, effectiveRepeat(cfg, repeat), pile.Remaining())))

	// the last card in the pile is dealt first
	cards := pile.Cards()
	slices.Reverse(cards)

	var line []string
	for i, card := range cards {
		line = append(line, c.render(card))
		if (i+1)%cardsPerLine == 0 || i == len(cards)-1 {
			fmt.Println(strings.Join(line, " "))
			line = line[:0]
		}
	}
	return nil
}

func (c *DeckCmd) render(card deck.Card) string {
	s := fmt.Sprintf("%3s", card)
	if c.NoColor {
		return s
	}
	if card.IsRed() {
		return redCardStyle.Render(s)
	}
	return blackCardStyle.Render(s)
}

func effectiveRepeat(cfg deck.SuitConfig, repeat int) int {
	if !cfg.SingleSuit() {
		return deck.MinRepeat
	}
	return deck.ClampRepeat(repeat)
}
