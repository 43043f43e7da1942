package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/floodrush/internal/core"
)

// screen identifies the active view of a session.
type screen int

const (
	screenMenu screen = iota
	screenLevels
	screenScores
	screenSettings
	screenGame
)

// SessionModel manages the full session flow: menu, level select,
// scoreboard, settings and the game. Used for local menus and SSH sessions.
type SessionModel struct {
	env      Env
	config   core.RuntimeConfig
	active   screen
	menu     MenuModel
	levels   LevelSelectModel
	scores   ScoreboardModel
	settings SettingsModel
	game     *GameModel
	quitting bool
}

// NewSessionModel creates a session that opens on the main menu.
func NewSessionModel(env Env, cfg core.RuntimeConfig) SessionModel {
	env = env.withDefaults()
	return SessionModel{
		env:    env,
		config: cfg,
		active: screenMenu,
		menu:   NewMenuModel(env, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen and handles transitions.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.active {
	case screenGame:
		return m.updateGame(msg)
	case screenLevels:
		return m.updateLevels(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.active = screenMenu
	m.game = nil
	m.menu = NewMenuModel(m.env, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	gm := NewGameModel(m.env, m.config, level)
	m.game = &gm
	m.active = screenGame
	return m, m.game.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}
	if m.menu.IsQuitting() {
		return m.quit()
	}

	switch m.menu.Chosen() {
	case ChoiceContinue:
		return m.startGame(m.env.settings().CurrentLevel)
	case ChoiceNewGame:
		return m.startGame(0)
	case ChoiceSelectLevel:
		m.levels = NewLevelSelectModel(m.env, m.config.ScreenW, m.config.ScreenH)
		m.active = screenLevels
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.env, m.config.ScreenW, m.config.ScreenH)
		m.active = screenScores
	case ChoiceSettings:
		m.settings = NewSettingsModel(m.env, m.config.ScreenW, m.config.ScreenH)
		m.active = screenSettings
	}
	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.levels.Update(msg)
	if lm, ok := newModel.(LevelSelectModel); ok {
		m.levels = lm
	}
	switch {
	case m.levels.IsQuitting():
		return m.quit()
	case m.levels.WantsBack():
		return m.toMenu()
	case m.levels.Selected() > 0:
		return m.startGame(m.levels.Selected())
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}
	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.settings.Update(msg)
	if sm, ok := newModel.(SettingsModel); ok {
		m.settings = sm
	}
	if m.settings.Saved() || m.settings.WantsBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = &gm
	}
	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.active {
	case screenGame:
		return m.game.View()
	case screenLevels:
		return m.levels.View()
	case screenScores:
		return m.scores.View()
	case screenSettings:
		return m.settings.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the interactive menu in the local terminal.
func RunSession(env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(env, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
