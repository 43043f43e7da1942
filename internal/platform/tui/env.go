package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/floodrush/internal/config"
	"github.com/vovakirdan/floodrush/internal/games/floodrush"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/levels"
	"github.com/vovakirdan/floodrush/internal/storage"
)

// Env bundles the dependencies shared by every screen of a session.
type Env struct {
	Store      *storage.Store // May be nil; scores and settings are then not kept
	Loader     *levels.Loader
	Config     config.Config
	Difficulty *config.DifficultyManager
	Profile    string // Settings profile: the SSH user, or storage.LocalProfile
	Logger     *log.Logger
	Theme      *Theme // Nil selects DefaultTheme
}

// withDefaults fills in anything the caller left empty.
func (e Env) withDefaults() Env {
	if e.Loader == nil {
		e.Loader = levels.NewLoader(levels.Default(), e.Logger)
	}
	if e.Config.Queue.Size == 0 {
		e.Config = config.Default()
	}
	if e.Difficulty == nil {
		e.Difficulty = config.NewDifficultyManager(e.Config.Difficulty)
	}
	if e.Profile == "" {
		e.Profile = storage.LocalProfile
	}
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Theme == nil {
		th := DefaultTheme()
		e.Theme = &th
	}
	return e
}

// settings loads the profile settings, falling back to defaults when there
// is no store.
func (e Env) settings() storage.Settings {
	if e.Store == nil {
		st := storage.DefaultSettings()
		st.PlayerName = e.Profile
		return st
	}
	st, err := e.Store.LoadSettings(e.Profile)
	if err != nil {
		e.Logger.Warn("could not load settings", "profile", e.Profile, "err", err)
		return storage.DefaultSettings()
	}
	return st
}

// newGame creates a game starting at level start.
func (e Env) newGame(start int) *floodrush.Game {
	opts := floodrush.Options{
		Loader:     e.Loader,
		Config:     e.Config,
		Difficulty: e.Difficulty,
		StartLevel: start,
	}
	if e.Store != nil {
		opts.TopScore = func(level int) int {
			best, err := e.Store.HighScore(level)
			if err != nil {
				e.Logger.Debug("high score lookup failed", "level", level, "err", err)
				return 0
			}
			return best
		}
	}
	return floodrush.New(opts)
}
