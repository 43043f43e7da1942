package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
	"github.com/vovakirdan/floodrush/internal/storage"
)

// LevelSelectModel lists the available levels with the player's record
// on each.
type LevelSelectModel struct {
	env          Env
	levels       []*core.Level
	stats        map[int]*storage.LevelStats
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	selected     int
	back         bool
	quitting     bool
}

// NewLevelSelectModel loads the level list and per-level stats.
func NewLevelSelectModel(env Env, width, height int) LevelSelectModel {
	env = env.withDefaults()

	lvls, err := env.Loader.LoadAll()
	if err != nil {
		env.Logger.Warn("could not list levels", "err", err)
	}

	var stats map[int]*storage.LevelStats
	if env.Store != nil {
		stats, err = env.Store.AllLevelStats()
		if err != nil {
			env.Logger.Warn("could not load level stats", "err", err)
		}
	}

	m := LevelSelectModel{
		env:       env,
		levels:    lvls,
		stats:     stats,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}

	// Start on the saved level.
	current := env.settings().CurrentLevel
	for i, lvl := range lvls {
		if lvl.Number() == current {
			m.cursor = i
		}
	}
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = m.levels[m.cursor].Number()
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

func (m LevelSelectModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelSelectModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

func (m LevelSelectModel) describe(lvl *core.Level) string {
	timeout := "no limit"
	if lvl.FloodTimeout() > 0 {
		timeout = fmt.Sprintf("%ds", lvl.FloodTimeout())
	}
	line := fmt.Sprintf("%3d. %-16s %-6s speed %-2d %-8s", lvl.Number(), lvl.Name(),
		lvl.Dimensions(), lvl.GameSpeed(), timeout)

	if st, ok := m.stats[lvl.Number()]; ok && st.Wins > 0 {
		line += fmt.Sprintf(" best %d", st.BestPoints)
	} else if ok {
		line += fmt.Sprintf(" %d tries", st.Attempts)
	}
	return line
}

// View renders the level selection.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}
	th := m.env.Theme

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(th.Title.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(th.Error.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.levels))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(th.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := th.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = th.ItemActive
		}
		b.WriteString(centerText(style.Render(cursor+m.describe(m.levels[i])), m.width))
		b.WriteString("\n")
	}
	if end < len(m.levels) {
		b.WriteString(centerText(th.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := th.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen level number, or 0 while still choosing.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}
