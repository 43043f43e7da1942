package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/floodrush/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 26  // Width of level list sidebar
	maxScores          = 100 // Max scores to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevTab, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevTab, k.NextTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next level"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardTab is one page of the scoreboard: every level, or a single one.
type boardTab struct {
	Level int // 0 for all levels
	Title string
	Best  int // Best winning score, 0 if the level was never won
}

// ScoreboardModel shows the high score table with one tab per level.
type ScoreboardModel struct {
	env         Env
	tabs        []boardTab
	tabCursor   int
	scores      []storage.ScoreEntry
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates the scoreboard, opened on the all-levels tab.
func NewScoreboardModel(env Env, width, height int) ScoreboardModel {
	env = env.withDefaults()

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		env:         env,
		tabs:        scoreTabs(env),
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadScores()
	return m
}

// scoreTabs builds the all-levels tab followed by one tab per level that
// the loader knows about.
func scoreTabs(env Env) []boardTab {
	tabs := []boardTab{{Level: 0, Title: "All levels"}}

	var stats map[int]*storage.LevelStats
	if env.Store != nil {
		s, err := env.Store.AllLevelStats()
		if err != nil {
			env.Logger.Warn("could not load level stats", "err", err)
		}
		stats = s
	}

	lvls, err := env.Loader.LoadAll()
	if err != nil {
		env.Logger.Warn("could not list levels", "err", err)
	}
	for _, lvl := range lvls {
		tab := boardTab{Level: lvl.Number(), Title: fmt.Sprintf("%d. %s", lvl.Number(), lvl.Name())}
		if st, ok := stats[lvl.Number()]; ok && st.Wins > 0 {
			tab.Best = st.BestPoints
			tabs[0].Best = max(tabs[0].Best, st.BestPoints)
		}
		tabs = append(tabs, tab)
	}
	return tabs
}

// createTable creates the score table sized for the current layout.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 16},
		{Title: "Level", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	available := m.width - 4
	if m.showSidebar {
		available -= sidebarWidth + 3
	}
	// Player names are up to 24 runes; the rest of the row is fixed.
	if spare := available - 59; spare > 0 {
		columns[1].Width += min(spare, maxNameLen-columns[1].Width)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	th := m.env.Theme
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = th.ItemActive
	t.SetStyles(s)

	return t
}

// loadScores loads scores for the selected tab.
func (m *ScoreboardModel) loadScores() {
	m.scores = nil
	if m.env.Store != nil {
		level := m.tabs[m.tabCursor].Level
		scores, err := m.env.Store.TopScores(level, maxScores)
		if err != nil {
			m.env.Logger.Warn("could not load scores", "level", level, "err", err)
		} else {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			strconv.Itoa(s.Level),
			strconv.Itoa(s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tabCursor = (m.tabCursor - 1 + len(m.tabs)) % len(m.tabs)
			m.loadScores()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.loadScores()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and anything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	th := m.env.Theme
	var b strings.Builder

	title := fmt.Sprintf("HIGH SCORES - %s", m.tabs[m.tabCursor].Title)
	b.WriteString(centerText(th.Title.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(th.Controls.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout puts the level list left of the table.
func (m ScoreboardModel) renderWideLayout() string {
	th := m.env.Theme

	var sidebar strings.Builder
	sidebar.WriteString(th.Title.Render("Levels"))
	sidebar.WriteString("\n")

	inner := sidebarWidth - 4 // Border and padding
	for i, tab := range m.tabs {
		best := "-"
		if tab.Best > 0 {
			best = strconv.Itoa(tab.Best)
		}
		name := tab.Title
		if room := inner - 3 - len(best); lipgloss.Width(name) > room {
			name = string([]rune(name)[:max(room-1, 1)]) + "."
		}
		line := fmt.Sprintf("%-*s %s", inner-2-len(best), name, best)

		style := th.ItemNormal
		switch {
		case i == m.tabCursor:
			style = th.ItemActive
			line = "> " + line
		case tab.Best == 0:
			style = th.ItemLocked
			line = "  " + line
		default:
			line = "  " + line
		}
		sidebar.WriteString(style.Render(line))
		sidebar.WriteString("\n")
	}

	side := th.Panel.Width(sidebarWidth).Render(strings.TrimSuffix(sidebar.String(), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", th.Panel.Render(m.renderTableContent()))
}

// renderNarrowLayout puts compact level tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	th := m.env.Theme
	var b strings.Builder

	tabs := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		short := "All"
		if tab.Level > 0 {
			short = "L" + strconv.Itoa(tab.Level)
		}
		if i == m.tabCursor {
			tabs[i] = th.ItemActive.Render("[" + short + "]")
		} else {
			tabs[i] = th.Description.Render(" " + short + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = th.ItemActive.Render(fmt.Sprintf("< %s >", m.tabs[m.tabCursor].Title))
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(th.Panel.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or a hint when it is empty.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		return m.env.Theme.Description.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nClear a level to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
