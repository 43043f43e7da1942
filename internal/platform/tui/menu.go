package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceContinue
	ChoiceNewGame
	ChoiceSelectLevel
	ChoiceScores
	ChoiceSettings
	ChoiceQuit
)

// MenuItem is one selectable line of the main menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	env       Env
	items     []MenuItem
	cursor    int
	width     int
	height    int
	player    string
	keyMapper *KeyMapper
	chosen    MenuChoice
	quitting  bool
}

// NewMenuModel creates the main menu. Continue resumes the saved level.
func NewMenuModel(env Env, width, height int) MenuModel {
	env = env.withDefaults()
	st := env.settings()

	continueTitle := fmt.Sprintf("Continue (Level %d)", st.CurrentLevel)
	if lvl, err := env.Loader.Load(st.CurrentLevel); err == nil {
		continueTitle = fmt.Sprintf("Continue (Level %d: %s)", lvl.Number(), lvl.Name())
	}

	items := []MenuItem{
		{ChoiceContinue, continueTitle},
		{ChoiceNewGame, "New Game"},
		{ChoiceSelectLevel, "Select Level"},
		{ChoiceScores, "High Scores"},
		{ChoiceSettings, "Settings"},
		{ChoiceQuit, "Quit"},
	}

	return MenuModel{
		env:       env,
		items:     items,
		width:     width,
		height:    height,
		player:    st.PlayerName,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = m.items[m.cursor].Choice
		if m.chosen == ChoiceQuit {
			m.quitting = true
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	th := m.env.Theme

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(th.Title.Render("F L O O D R U S H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(th.Description.Render("Lay the pipes before the water comes"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(th.Description.Render("Playing as ")+th.Value.Render(m.player), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := th.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = th.ItemActive
		}
		b.WriteString(centerText(style.Render(cursor+item.Title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := th.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the picked item, or ChoiceNone while still choosing.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
