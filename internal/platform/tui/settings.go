package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/floodrush/internal/storage"
)

const (
	maxNameLen = 24
	volumeStep = 10
)

// settingsField is one editable row of the settings screen.
type settingsField int

const (
	fieldName settingsField = iota
	fieldMusic
	fieldSound
	fieldSave
	fieldCount
)

// SettingsKeyMap defines the key bindings for the settings screen.
type SettingsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Decrease key.Binding
	Increase key.Binding
	Save     key.Binding
	Back     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.Save, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Decrease, k.Increase}, {k.Save, k.Back}}
}

// DefaultSettingsKeyMap returns default key bindings. Letters are left
// free for typing the player name; left and right move the name cursor
// while that row is selected.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("up", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("down", "next")),
		Decrease: key.NewBinding(key.WithKeys("left"), key.WithHelp("left", "less")),
		Increase: key.NewBinding(key.WithKeys("right"), key.WithHelp("right", "more")),
		Save:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Back:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// SettingsModel edits the player profile settings.
type SettingsModel struct {
	env      Env
	settings storage.Settings
	name     textinput.Model
	field    settingsField
	keys     SettingsKeyMap
	help     help.Model
	width    int
	height   int
	err      error
	saved    bool
	back     bool
}

// NewSettingsModel loads the profile settings for editing.
func NewSettingsModel(env Env, width, height int) SettingsModel {
	env = env.withDefaults()
	st := env.settings()
	return SettingsModel{
		env:      env,
		settings: st,
		name:     newNameInput(env.Theme, st.PlayerName),
		keys:     DefaultSettingsKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
}

// newNameInput creates the focused player name field.
func newNameInput(th *Theme, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = maxNameLen
	ti.Width = maxNameLen
	ti.TextStyle = th.Value
	ti.Cursor.Style = th.ItemActive
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	ti.Focus()
	return ti
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back = true
	case key.Matches(msg, m.keys.Up):
		m.selectField((m.field - 1 + fieldCount) % fieldCount)
	case key.Matches(msg, m.keys.Down):
		m.selectField((m.field + 1) % fieldCount)
	case key.Matches(msg, m.keys.Save):
		m.save()
	case m.field == fieldName:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		m.settings.PlayerName = m.name.Value()
		return m, cmd
	case key.Matches(msg, m.keys.Decrease):
		m.adjust(-volumeStep)
	case key.Matches(msg, m.keys.Increase):
		m.adjust(volumeStep)
	}
	return m, nil
}

// selectField moves the row cursor; the name input only takes keys while
// its row is selected.
func (m *SettingsModel) selectField(f settingsField) {
	m.field = f
	if f == fieldName {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
}

func (m *SettingsModel) adjust(delta int) {
	switch m.field {
	case fieldMusic:
		m.settings.MusicVolume = min(max(m.settings.MusicVolume+delta, 0), 100)
	case fieldSound:
		m.settings.SoundVolume = min(max(m.settings.SoundVolume+delta, 0), 100)
	}
}

func (m *SettingsModel) save() {
	m.settings.PlayerName = strings.TrimSpace(m.name.Value())
	if err := m.settings.Validate(); err != nil {
		m.err = err
		return
	}
	if m.env.Store != nil {
		if err := m.env.Store.SaveSettings(m.env.Profile, m.settings); err != nil {
			m.env.Logger.Warn("could not save settings", "profile", m.env.Profile, "err", err)
			m.err = err
			return
		}
	}
	m.err = nil
	m.saved = true
}

func volumeBar(v int) string {
	filled := v / volumeStep
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", 100/volumeStep-filled) + "]" +
		fmt.Sprintf(" %3d%%", v)
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	th := m.env.Theme

	rows := []struct {
		label string
		value string
	}{
		{"Player name", m.name.View()},
		{"Music volume", volumeBar(m.settings.MusicVolume)},
		{"Sound volume", volumeBar(m.settings.SoundVolume)},
		{"", "Save"},
	}

	var body strings.Builder
	for i, row := range rows {
		marker := "  "
		style := th.ItemNormal
		if settingsField(i) == m.field {
			marker = "> "
			style = th.ItemActive
		}
		switch {
		case row.label == "":
			body.WriteString(style.Render(marker + row.value))
		case settingsField(i) == fieldName:
			body.WriteString(style.Render(fmt.Sprintf("%s%-14s", marker, row.label)) + row.value)
		default:
			body.WriteString(style.Render(fmt.Sprintf("%s%-14s", marker, row.label)) + th.Value.Render(row.value))
		}
		body.WriteString("\n")
	}
	body.WriteString(th.Description.Render(fmt.Sprintf("  Current level: %d", m.settings.CurrentLevel)))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(th.Title.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(th.Panel.Render(body.String()), m.width))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(centerText(th.Error.Render(m.err.Error()), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(th.Controls.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() storage.Settings {
	return m.settings
}

// Saved returns true once the settings were stored.
func (m SettingsModel) Saved() bool {
	return m.saved
}

// WantsBack returns true if the user left without saving.
func (m SettingsModel) WantsBack() bool {
	return m.back
}
