package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/floodrush/internal/storage"
)

func updateSettings(m SettingsModel, msgs ...tea.Msg) SettingsModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SettingsModel)
	}
	return m
}

func clearName(m SettingsModel) SettingsModel {
	for i := 0; i < maxNameLen+1; i++ {
		m = updateSettings(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	return m
}

func TestSettingsEditAndSave(t *testing.T) {
	store := openTestStore(t)
	m := clearName(NewSettingsModel(Env{Store: store}, 80, 24))

	m = updateSettings(m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")},
		tea.KeyMsg{Type: tea.KeyDown},  // music
		tea.KeyMsg{Type: tea.KeyRight}, // 80
		tea.KeyMsg{Type: tea.KeyDown},  // sound
		tea.KeyMsg{Type: tea.KeyLeft},  // 60
		tea.KeyMsg{Type: tea.KeyLeft},  // 50
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if !m.Saved() {
		t.Fatalf("settings should be saved, err = %v", m.err)
	}

	st, err := store.LoadSettings(storage.LocalProfile)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if st.PlayerName != "Ada" || st.MusicVolume != 80 || st.SoundVolume != 50 {
		t.Errorf("unexpected settings %+v", st)
	}
}

func TestSettingsVolumeClamped(t *testing.T) {
	m := NewSettingsModel(Env{}, 80, 24)
	m = updateSettings(m, tea.KeyMsg{Type: tea.KeyDown})
	for i := 0; i < 20; i++ {
		m = updateSettings(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.settings.MusicVolume != 100 {
		t.Errorf("music volume should stop at 100, got %d", m.settings.MusicVolume)
	}
	for i := 0; i < 20; i++ {
		m = updateSettings(m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.settings.MusicVolume != 0 {
		t.Errorf("music volume should stop at 0, got %d", m.settings.MusicVolume)
	}
}

func TestSettingsRejectsEmptyName(t *testing.T) {
	store := openTestStore(t)
	before, err := store.LoadSettings(storage.LocalProfile)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	m := clearName(NewSettingsModel(Env{Store: store}, 80, 24))
	m = updateSettings(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Saved() || m.err == nil {
		t.Fatal("an empty name should not save")
	}

	after, _ := store.LoadSettings(storage.LocalProfile)
	if after.PlayerName != before.PlayerName {
		t.Errorf("stored name changed from %q to %q", before.PlayerName, after.PlayerName)
	}
}

func TestSettingsNameLength(t *testing.T) {
	m := clearName(NewSettingsModel(Env{}, 80, 24))
	m = updateSettings(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abcdefghijklmnopqrstuvwxyz0123")})
	if got := len([]rune(m.settings.PlayerName)); got != maxNameLen {
		t.Errorf("name should be capped at %d runes, got %d", maxNameLen, got)
	}
}

func TestSettingsNameCursor(t *testing.T) {
	m := clearName(NewSettingsModel(Env{}, 80, 24))
	music := m.settings.MusicVolume

	m = updateSettings(m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ad")},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")},
	)
	if m.settings.PlayerName != "Axda" {
		t.Errorf("name = %q, expected %q", m.settings.PlayerName, "Axda")
	}
	if m.settings.MusicVolume != music {
		t.Errorf("arrows on the name row should not change volume, got %d", m.settings.MusicVolume)
	}

	// Off the name row, typing goes nowhere.
	m = updateSettings(m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zz")},
	)
	if m.settings.PlayerName != "Axda" {
		t.Errorf("name changed off its row: %q", m.settings.PlayerName)
	}
}

func TestSettingsBack(t *testing.T) {
	m := updateSettings(NewSettingsModel(Env{}, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() || m.Saved() {
		t.Error("esc should leave without saving")
	}
}
