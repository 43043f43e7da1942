package storage

import (
	"database/sql"
	"fmt"
	"math/rand"
	"strconv"
)

// LocalProfile is the settings profile used by local play.
const LocalProfile = "local"

// Settings are the per-profile player preferences.
type Settings struct {
	PlayerName   string
	MusicVolume  int // 0..100
	SoundVolume  int // 0..100
	CurrentLevel int
}

const (
	keyPlayerName   = "player_name"
	keyMusicVolume  = "music_volume"
	keySoundVolume  = "sound_volume"
	keyCurrentLevel = "current_level"
)

const nameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePlayerName returns "Player_" followed by ten characters drawn
// from A-Z and 0-9 using intn. A nil intn uses math/rand.
func GeneratePlayerName(intn func(n int) int) string {
	if intn == nil {
		intn = rand.Intn
	}
	b := []byte("Player_")
	for i := 0; i < 10; i++ {
		b = append(b, nameAlphabet[intn(len(nameAlphabet))])
	}
	return string(b)
}

// DefaultSettings returns fresh settings with a generated player name.
func DefaultSettings() Settings {
	return Settings{
		PlayerName:   GeneratePlayerName(nil),
		MusicVolume:  70,
		SoundVolume:  70,
		CurrentLevel: 1,
	}
}

// Validate reports out-of-range settings.
func (s Settings) Validate() error {
	switch {
	case s.PlayerName == "":
		return fmt.Errorf("storage: player name cannot be empty")
	case s.MusicVolume < 0 || s.MusicVolume > 100:
		return fmt.Errorf("storage: music volume must be within [0,100] (got %d)", s.MusicVolume)
	case s.SoundVolume < 0 || s.SoundVolume > 100:
		return fmt.Errorf("storage: sound volume must be within [0,100] (got %d)", s.SoundVolume)
	case s.CurrentLevel < 1:
		return fmt.Errorf("storage: current level must be positive (got %d)", s.CurrentLevel)
	}
	return nil
}

// LoadSettings returns the settings for a profile. Missing keys take
// their DefaultSettings values; a profile without a player name gets a
// generated one, saved so it stays stable.
func (s *Store) LoadSettings(profile string) (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings WHERE profile = ?", profile)
	if err != nil {
		return Settings{}, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Settings{}, fmt.Errorf("storage: cannot scan setting: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return Settings{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	st := DefaultSettings()
	st.MusicVolume = atoiOr(values[keyMusicVolume], st.MusicVolume)
	st.SoundVolume = atoiOr(values[keySoundVolume], st.SoundVolume)
	st.CurrentLevel = atoiOr(values[keyCurrentLevel], st.CurrentLevel)
	if v := values[keyPlayerName]; v != "" {
		st.PlayerName = v
		return st, nil
	}
	return st, s.SaveSettings(profile, st)
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// SaveSettings stores every setting for a profile in one transaction.
func (s *Store) SaveSettings(profile string, st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	values := map[string]string{
		keyPlayerName:   st.PlayerName,
		keyMusicVolume:  strconv.Itoa(st.MusicVolume),
		keySoundVolume:  strconv.Itoa(st.SoundVolume),
		keyCurrentLevel: strconv.Itoa(st.CurrentLevel),
	}
	for k, v := range values {
		if err := upsertSetting(tx, profile, k, v); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}

// SaveCurrentLevel updates only the saved level progress.
func (s *Store) SaveCurrentLevel(profile string, level int) error {
	if level < 1 {
		return fmt.Errorf("storage: current level must be positive (got %d)", level)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertSetting(tx, profile, keyCurrentLevel, strconv.Itoa(level)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot save current level: %w", err)
	}
	return nil
}

func upsertSetting(tx *sql.Tx, profile, key, value string) error {
	_, err := tx.Exec(
		`INSERT INTO settings (profile, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value`,
		profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
	}
	return nil
}
