package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/powerjack/internal/deck"
	"github.com/lox/powerjack/internal/game"
)

// maxActivity is how many recent events the sidebar keeps
const maxActivity = 6

const (
	focusLog = iota
	focusInput
)

// Table is the part of *game.Table the UI drives
type Table interface {
	StartRound(cfg game.RoundConfig) error
	Hit() error
	Stand() error
	UsePowerCard(id game.PowerCardID, target game.Seat) (bool, error)
	ResetRound()
	NewGame()
	Snapshot() game.Snapshot
}

// Model is the bubbletea model for an interactive game
type Model struct {
	table     Table
	sub       *Subscription
	logger    *log.Logger
	defaults  game.RoundConfig
	formatter *game.EventFormatter

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	snap        game.Snapshot
	activity    []string
	status      string
	statusErr   bool
	focusedPane int
	quitting    bool

	// Dimensions
	width       int
	height      int
	initialized bool
}

// Option configures a Model
type Option func(*Model)

// WithDefaults sets the round configuration used by a bare "start"
func WithDefaults(cfg game.RoundConfig) Option {
	return func(m *Model) { m.defaults = cfg.Normalize() }
}

// New creates a model driving table. sub may be nil when events are not
// wired, in which case the view refreshes only after user input.
func New(table Table, sub *Subscription, logger *log.Logger, opts ...Option) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "start, hit, stand, power <card> [seat]"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusColor).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		table:       table,
		sub:         sub,
		logger:      logger.WithPrefix("tui"),
		defaults:    game.DefaultRoundConfig(),
		formatter:   game.NewEventFormatter(game.FormattingOptions{Perspective: game.Player}),
		logViewport: vp,
		actionInput: ti,
		focusedPane: focusInput,
		status:      "Type 'start' to deal a round. " + HelpText,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.sub != nil {
		cmds = append(cmds, m.sub.Wait())
	}
	return tea.Batch(cmds...)
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case EventMsg:
		m.recordEvent(msg.Event)
		m.refresh()
		if m.sub != nil {
			cmds = append(cmds, m.sub.Wait())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == focusLog {
				m.focusedPane = focusInput
				m.actionInput.Focus()
			} else {
				m.focusedPane = focusLog
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == focusInput {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if m.execute(input) {
					m.quitting = true
					return m, tea.Quit
				}
				m.refresh()
			}
		}

		if m.focusedPane == focusLog {
			m.scrollLog(msg.String())
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == focusInput {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) scrollLog(key string) {
	switch key {
	case "up", "k":
		m.logViewport.ScrollUp(1)
	case "down", "j":
		m.logViewport.ScrollDown(1)
	case "pgup", "b":
		m.logViewport.HalfPageUp()
	case "pgdown", "f":
		m.logViewport.HalfPageDown()
	case "home", "g":
		m.logViewport.GotoTop()
	case "end", "G":
		m.logViewport.GotoBottom()
	}
}

// execute runs one line of input against the table. It returns true when
// the user asked to quit.
func (m *Model) execute(input string) bool {
	if input == "" {
		return false
	}

	cmd, err := ParseCommand(input, m.defaults)
	if err != nil {
		m.setStatus(err)
		return false
	}

	switch cmd.Kind {
	case CmdQuit:
		return true
	case CmdHelp:
		m.setInfo(HelpText)
	case CmdHit:
		m.setResult("Hit", m.table.Hit())
	case CmdStand:
		m.setResult("Stood", m.table.Stand())
	case CmdStart:
		m.setResult(fmt.Sprintf("Dealt from %s x%d", cmd.Round.Suits, cmd.Round.Repeat), m.table.StartRound(cmd.Round))
	case CmdReset:
		m.table.ResetRound()
		m.setInfo("Round reset")
	case CmdNewGame:
		m.table.NewGame()
		m.setInfo("New game")
	case CmdPower:
		applied, err := m.table.UsePowerCard(cmd.Power, cmd.Target)
		switch {
		case err != nil:
			m.setStatus(err)
		case !applied:
			m.setStatus(fmt.Errorf("%s needs a valid target seat", cmd.Power))
		default:
			m.setInfo(fmt.Sprintf("Played %s", cmd.Power))
		}
	}
	m.logger.Debug("Command executed", "input", input, "error", m.statusErr)
	return false
}

func (m *Model) setResult(ok string, err error) {
	if err != nil {
		m.setStatus(err)
		return
	}
	m.setInfo(ok)
}

func (m *Model) setStatus(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) setInfo(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) recordEvent(event game.GameEvent) {
	if event == nil {
		return
	}
	m.activity = append(m.activity, m.formatter.Format(event))
	if len(m.activity) > maxActivity {
		m.activity = m.activity[len(m.activity)-maxActivity:]
	}
}

// refresh re-reads the table and updates the log viewport
func (m *Model) refresh() {
	m.snap = m.table.Snapshot()
	m.logViewport.SetContent(m.renderLogPane())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := paneStyle(m.focusedPane == focusInput).
		Width(atLeastOne(m.width - 2)).
		Height(atLeastOne(actionHeight)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 30)
	paneHeight := atLeastOne(m.height - actionHeight - 4)
	sidebarPane := paneStyle(false).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := atLeastOne(m.width - sidebarWidth - 4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logPane := paneStyle(m.focusedPane == focusLog).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func paneStyle(focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor)
	if focused {
		style = style.BorderForeground(focusColor)
	}
	return style
}

func atLeastOne(n int) int {
	return max(n, 1)
}

// renderLogPane renders the round log
func (m *Model) renderLogPane() string {
	lines := make([]string, 0, len(m.snap.Log)+1)
	if m.snap.Round > 0 {
		lines = append(lines, HeaderStyle.Render(fmt.Sprintf(" Round %d ", m.snap.Round)))
	}
	for _, line := range m.snap.Log {
		lines = append(lines, GameLogStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

// renderSidebarPane shows every seat, the pile and recent activity
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(WarningStyle.Render(fmt.Sprintf("Pile: %d", m.snap.PileSize)))
	content.WriteString(" | ")
	content.WriteString(InfoStyle.Render(m.snap.Status.String()))
	if m.snap.Next != "" {
		content.WriteString(" | ")
		content.WriteString(InfoStyle.Render("next: " + m.snap.Next))
	}
	content.WriteString("\n\n")

	for _, seat := range game.Rotation {
		content.WriteString(m.renderSeat(m.snap.Seat(seat)))
		content.WriteString("\n")
	}

	if m.snap.GameOver {
		content.WriteString("\n")
		content.WriteString(ErrorStyle.Render("GAME OVER - type 'new' to restart"))
		content.WriteString("\n")
	}

	if len(m.activity) > 0 {
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render("Recent:"))
		content.WriteString("\n")
		for _, line := range m.activity {
			content.WriteString(InfoStyle.Render("  " + line))
			content.WriteString("\n")
		}
	}

	return content.String()
}

func (m *Model) renderSeat(v game.SeatView) string {
	marker := "  "
	if v.Seat == m.snap.Current {
		marker = "> "
	}

	line := fmt.Sprintf("%s%-7s %3d pts  %s", marker, v.Seat.DisplayName(), v.Score, m.formatCards(v.Hand))
	if len(v.Hand) > 0 {
		line += fmt.Sprintf(" (%d)", v.Value)
	}
	switch {
	case v.Blackjack:
		line += " " + SuccessStyle.Render("blackjack")
	case v.Soft:
		line += " " + InfoStyle.Render("soft")
	}
	switch {
	case v.Bust:
		line += " " + ErrorStyle.Render("bust")
	case v.Stood:
		line += " " + StoodStyle.Render("stood")
	}

	if v.Seat == m.snap.Current {
		return CurrentSeatStyle.Render(marker) + line[len(marker):]
	}
	return line
}

// renderActionPane renders the action input pane
func (m *Model) renderActionPane() string {
	var content strings.Builder

	you := m.snap.Seat(game.Player)
	if m.snap.Status == game.Playing {
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Your hand: %s  value %d", m.formatCards(you.Hand), you.Value)))
		content.WriteString("\n")
	}
	content.WriteString(m.renderAvailableActions())
	content.WriteString("\n")

	if m.statusErr {
		content.WriteString(ErrorStyle.Render(m.status))
	} else {
		content.WriteString(SuccessStyle.Render(m.status))
	}
	content.WriteString("\n")

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == focusLog {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// renderAvailableActions lists the commands the table would accept now
func (m *Model) renderAvailableActions() string {
	var actions []string
	switch {
	case m.snap.GameOver:
		actions = append(actions, WarningStyle.Render("[new]"))
	case m.snap.Status != game.Playing:
		actions = append(actions, SuccessStyle.Render("[start]"))
	default:
		if m.snap.PlayerCanAct() {
			actions = append(actions, SuccessStyle.Render("[hit]"), SuccessStyle.Render("[stand]"))
			for _, card := range game.PowerCards() {
				label := string(card.ID)
				if card.NeedsTarget() {
					label += " <seat>"
				}
				actions = append(actions, WarningStyle.Render("[power "+label+"]"))
			}
		} else {
			actions = append(actions, InfoStyle.Render(fmt.Sprintf("[waiting for %s]", m.snap.Current.DisplayName())))
		}
		actions = append(actions, InfoStyle.Render("[reset]"))
	}
	return ActionsStyle.Render("Actions: ") + strings.Join(actions, " ")
}

// formatCards formats cards with colors
func (m *Model) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
