package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lightbike/internal/storage"
)

// Stats screen layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the wins sidebar
	sidebarWidth       = 22  // Width of the wins sidebar
	maxMatches         = 100 // Max matches to load
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Clear key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Clear, k.Help, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the match history screen.
type StatsModel struct {
	gameID      string
	store       *storage.Store
	matches     []storage.Match
	wins        map[int]int
	stats       *storage.GameStats
	err         error
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewStatsModel creates a new stats model for one game.
func NewStatsModel(store *storage.Store, gameID string, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		gameID:      gameID,
		store:       store,
		keys:        DefaultStatsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Players", Width: 8},
		{Title: "Winner", Width: 10},
		{Title: "Duration", Width: 10},
		{Title: "Date", Width: 14},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the match history and win counts from the store.
func (m *StatsModel) load() {
	m.matches, m.wins, m.stats, m.err = nil, nil, nil, nil
	if m.store != nil {
		m.matches, m.err = m.store.RecentMatches(m.gameID, maxMatches)
		if m.err == nil {
			m.wins, m.err = m.store.WinCounts(m.gameID)
		}
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(m.gameID)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded matches.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, match := range m.matches {
		rows[i] = table.Row{
			fmt.Sprintf("%d", match.ID),
			fmt.Sprintf("%d", match.Players),
			winnerLabel(match.Winner),
			formatDuration(match.DurationMs),
			match.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// winnerLabel names a winning seat, 0 being a draw.
func winnerLabel(seat int) string {
	if seat == 0 {
		return "Draw"
	}
	return fmt.Sprintf("Player %d", seat)
}

func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(100 * time.Millisecond).String()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil {
				m.err = m.store.ClearMatches(m.gameID)
				if m.err == nil {
					m.load()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("MATCH HISTORY - "+strings.ToUpper(m.gameID), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tbl := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderSidebar())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", tbl))
	} else {
		b.WriteString(tbl)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the totals and the wins per seat.
func (m StatsModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Wins\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	seats := make([]int, 0, len(m.wins))
	for seat := range m.wins {
		seats = append(seats, seat)
	}
	sort.Ints(seats)

	for _, seat := range seats {
		fmt.Fprintf(&sb, "%-10s %4d\n", winnerLabel(seat), m.wins[seat])
	}

	if m.stats != nil && m.stats.MatchCount > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Rounds   %d\n", m.stats.MatchCount)
		fmt.Fprintf(&sb, "Average  %s\n", formatDuration(int64(m.stats.AvgDurationMs)))
		fmt.Fprintf(&sb, "Longest  %s\n", formatDuration(m.stats.LongestMs))
	}
	return sb.String()
}

// renderTableContent renders the table or an empty/error message.
func (m StatsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No database available.")
	case m.err != nil:
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	case len(m.matches) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nFinish a round to see it here!")
	}

	return m.table.View()
}

// centerText pads text on the left so that it is centered in width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunStats runs the match history screen for one game.
func RunStats(store *storage.Store, gameID string, width, height int) error {
	p := tea.NewProgram(
		NewStatsModel(store, gameID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
