package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/floodrush/internal/core"
	"github.com/vovakirdan/floodrush/internal/games/floodrush"
	fcore "github.com/vovakirdan/floodrush/internal/games/floodrush/core"
	"github.com/vovakirdan/floodrush/internal/storage"
)

// GameModel is the Bubble Tea model that runs a FloodRush game.
type GameModel struct {
	env        Env
	game       *floodrush.Game
	player     string
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model starting at level start
// (0 means the first level).
func NewGameModel(env Env, cfg core.RuntimeConfig, start int) GameModel {
	env = env.withDefaults()
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return GameModel{
		env:        env,
		game:       env.newGame(start),
		player:     env.settings().PlayerName,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if err := m.game.Err(); err != nil {
		m.env.Logger.Error("could not start game", "err", err)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only while paused or after the level ended.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.abandon()
		m.backToMenu = true
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Finished {
		m.recordResult(m.game.Result())
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func outcomeOf(r floodrush.Result) string {
	switch {
	case r.Won:
		return storage.OutcomeWon
	case r.Reason == fcore.TimedOut:
		return storage.OutcomeTimedOut
	default:
		return storage.OutcomeLeaked
	}
}

// recordResult persists a finished level. Failures are logged and the
// game carries on.
func (m GameModel) recordResult(r floodrush.Result) {
	log := m.env.Logger.With("player", m.player, "level", r.Level)
	log.Info("level finished", "outcome", outcomeOf(r), "points", r.Points, "elapsed", r.Elapsed)

	if m.env.Store == nil {
		return
	}
	runID, err := m.env.Store.SaveLevelResult(storage.LevelResult{
		Player:   m.player,
		Level:    r.Level,
		Outcome:  outcomeOf(r),
		Points:   r.Points,
		Duration: r.Elapsed,
	})
	if err != nil {
		log.Warn("could not save level result", "err", err)
	} else {
		log.Debug("saved level result", "run", runID)
	}

	if !r.Won {
		return
	}
	if _, err := m.env.Store.SaveScore(m.player, r.Level, r.Points); err != nil {
		log.Warn("could not save score", "err", err)
	}
	if r.Next > 0 {
		if err := m.env.Store.SaveCurrentLevel(m.env.Profile, r.Next); err != nil {
			log.Warn("could not save progress", "err", err)
		}
	}
}

// abandon records a level left while water was already running.
func (m GameModel) abandon() {
	flow := m.game.Flow()
	if m.env.Store == nil || flow == nil || !flow.Started() || flow.Done() {
		return
	}
	_, err := m.env.Store.SaveLevelResult(storage.LevelResult{
		Player:   m.player,
		Level:    m.gameState.Level,
		Outcome:  storage.OutcomeAbandoned,
		Points:   m.gameState.Score,
		Duration: flow.Elapsed(),
	})
	if err != nil {
		m.env.Logger.Warn("could not save abandoned level", "err", err)
	}
}

// saveScreenshot writes the current screen to ~/.floodrush/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".floodrush", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.Logger.Warn("could not create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("level%d_%s.txt", m.gameState.Level, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.Logger.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays FloodRush from level start in the local terminal.
func Run(env Env, cfg core.RuntimeConfig, start int) error {
	model := NewGameModel(env, cfg, start)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
