package storage

import (
	"strings"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	store := openTestStore(t)

	st, err := store.LoadSettings(LocalProfile)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if !strings.HasPrefix(st.PlayerName, "Player_") {
		t.Errorf("Expected generated player name, got %q", st.PlayerName)
	}
	if st.MusicVolume != 70 || st.SoundVolume != 70 || st.CurrentLevel != 1 {
		t.Errorf("Unexpected defaults: %+v", st)
	}

	// The generated name is persisted.
	again, _ := store.LoadSettings(LocalProfile)
	if again.PlayerName != st.PlayerName {
		t.Errorf("Player name changed between loads: %q != %q", again.PlayerName, st.PlayerName)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	want := Settings{PlayerName: "ada", MusicVolume: 10, SoundVolume: 95, CurrentLevel: 4}

	if err := store.SaveSettings("ada", want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	got, err := store.LoadSettings("ada")
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	// Profiles are independent.
	other, _ := store.LoadSettings("bob")
	if other.CurrentLevel != 1 {
		t.Errorf("Expected fresh profile at level 1, got %d", other.CurrentLevel)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	store := openTestStore(t)

	testCases := []struct {
		name string
		st   Settings
	}{
		{"empty name", Settings{PlayerName: "", MusicVolume: 50, SoundVolume: 50, CurrentLevel: 1}},
		{"music too loud", Settings{PlayerName: "x", MusicVolume: 101, SoundVolume: 50, CurrentLevel: 1}},
		{"negative sound", Settings{PlayerName: "x", MusicVolume: 50, SoundVolume: -1, CurrentLevel: 1}},
		{"level zero", Settings{PlayerName: "x", MusicVolume: 50, SoundVolume: 50, CurrentLevel: 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.SaveSettings(LocalProfile, tc.st); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSaveCurrentLevel(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveCurrentLevel(LocalProfile, 7); err != nil {
		t.Fatalf("SaveCurrentLevel() failed: %v", err)
	}
	st, err := store.LoadSettings(LocalProfile)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if st.CurrentLevel != 7 {
		t.Errorf("Expected level 7, got %d", st.CurrentLevel)
	}
	if st.PlayerName == "" {
		t.Error("Expected a generated player name")
	}

	if err := store.SaveCurrentLevel(LocalProfile, 0); err == nil {
		t.Error("Expected error for level 0")
	}
}
