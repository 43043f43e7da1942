// Package floodrush provides the FloodRush pipe-laying game. It wires the
// engine in floodrush/core to the platform's tick, input and screen types.
package floodrush

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/floodrush/internal/config"
	platformcore "github.com/vovakirdan/floodrush/internal/core"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/levels"
)

// ID is the game identifier used for score storage.
const ID = "floodrush"

// Options configures a game.
type Options struct {
	Loader     *levels.Loader
	Config     config.Config
	Difficulty *config.DifficultyManager
	// StartLevel is the first level played. 0 means the lowest available.
	StartLevel int
	// TopScore returns the best recorded score for a level. Optional.
	TopScore func(level int) int
}

// Result describes how a level ended.
type Result struct {
	Level   int
	Won     bool
	Reason  core.FlowEventKind // Reached, Leaked or TimedOut
	Points  int
	Elapsed time.Duration
	Next    int // Next level number, 0 when this was the last one
}

var _ platformcore.Game = (*Game)(nil)

// Game implements platformcore.Game for FloodRush.
type Game struct {
	opts Options
	cfg  platformcore.RuntimeConfig
	rng  *core.XorShiftRNG

	level *core.Level
	field *core.Field
	queue *core.PieceQueue
	flow  *core.Flow

	levelNumber int
	runScore    int // points from levels already won this run
	topScore    int
	cursor      core.Position

	paused     bool
	finished   bool
	allCleared bool
	result     Result
	message    string
	err        error
}

// New creates a game. A nil loader uses the embedded level pack.
func New(opts Options) *Game {
	if opts.Loader == nil {
		opts.Loader = levels.NewLoader(levels.Default(), nil)
	}
	if opts.Config.Queue.Size == 0 {
		opts.Config = config.Default()
	}
	if opts.Difficulty == nil {
		opts.Difficulty = config.NewDifficultyManager(opts.Config.Difficulty)
	}
	return &Game{opts: opts}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "FloodRush"
}

// Reset starts the run again from the configured start level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = platformcore.DefaultConfig().TickRate
	}
	g.cfg = cfg
	g.rng = core.NewRNG(cfg.Seed)
	g.runScore = 0
	g.allCleared = false

	start := g.opts.StartLevel
	if start <= 0 {
		first, err := g.opts.Loader.First()
		if err != nil {
			g.fail(err)
			return
		}
		start = first
	}
	g.loadLevel(start)
}

// Resize updates the screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
}

func (g *Game) fail(err error) {
	g.err = err
	g.level = nil
	g.field = nil
	g.flow = nil
	g.finished = true
}

// loadLevel sets up a fresh field, queue and flow for level n.
func (g *Game) loadLevel(n int) {
	lvl, err := g.opts.Loader.Load(n)
	if err != nil {
		g.fail(err)
		return
	}

	g.err = nil
	g.level = lvl
	g.levelNumber = n
	g.field = core.NewField(lvl)
	g.paused = false
	g.finished = false
	g.result = Result{}
	g.message = ""

	q := g.opts.Config.Queue
	var excluded []core.PipeType
	for _, t := range core.PipeTypes {
		if lvl.ExcludesType(t) {
			excluded = append(excluded, t)
		}
	}
	g.queue = core.NewPieceQueue(g.rng, core.QueueOptions{
		Capacity:      q.Size,
		MinPoints:     q.MinPoints,
		MaxPoints:     q.MaxPoints,
		MinSpeed:      q.MinSpeed,
		MaxSpeed:      q.MaxSpeed,
		ExcludedTypes: excluded,
	})
	g.queue.Initialize()

	f := g.opts.Config.Flow
	delay := g.opts.Difficulty.StartDelay(f.StartDelaySeconds, n, g.runScore)
	g.flow = core.NewFlow(g.field, core.FlowOptions{
		FillRate:    g.opts.Difficulty.FillRate(f.FillRate, n, g.runScore),
		StartDelay:  time.Duration(delay * float64(time.Second)),
		FastForward: f.FastForward,
	})

	g.topScore = 0
	if g.opts.TopScore != nil {
		g.topScore = g.opts.TopScore(n)
	}

	dims := lvl.Dimensions()
	g.cursor = core.P(dims.Width/2, dims.Height/2)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.level == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		g.loadLevel(g.levelNumber)
		return platformcore.StepResult{State: g.State()}
	}

	if g.finished {
		if in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionPlace) {
			g.continueRun()
		}
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall() {
		return platformcore.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(platformcore.ActionPlace) {
		g.placeNext()
	}
	if in.Has(platformcore.ActionDiscard) {
		if _, err := g.queue.TakeNext(); err == nil {
			g.message = "Piece discarded"
		}
	}
	if in.Has(platformcore.ActionFastForward) && !g.flow.FastForwarding() {
		g.flow.FastForward()
		g.message = "Fast forward"
	}

	events := g.flow.Advance(time.Second / time.Duration(g.cfg.TickRate))
	for _, e := range events {
		g.handleEvent(e)
	}

	finished := false
	if g.flow.Done() {
		g.finish()
		finished = true
	}
	return platformcore.StepResult{State: g.State(), Finished: finished}
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	dims := g.level.Dimensions()
	x, y := g.cursor.X, g.cursor.Y
	if in.Has(platformcore.ActionLeft) {
		x--
	}
	if in.Has(platformcore.ActionRight) {
		x++
	}
	if in.Has(platformcore.ActionUp) {
		y--
	}
	if in.Has(platformcore.ActionDown) {
		y++
	}
	g.cursor = core.P(
		platformcore.Clamp(x, 0, dims.Width-1),
		platformcore.Clamp(y, 0, dims.Height-1),
	)
}

// placeNext puts the queue head under the cursor, replacing an idle piece.
func (g *Game) placeNext() {
	piece, err := g.queue.Peek()
	if err != nil {
		return
	}
	old, err := g.field.Place(g.cursor, piece)
	if err != nil {
		g.message = placeError(err)
		return
	}
	if _, err := g.queue.TakeNext(); err != nil {
		return
	}
	g.field.Trace()
	if old != nil {
		g.message = "Replaced " + old.Type().String()
	} else {
		g.message = ""
	}
}

func placeError(err error) string {
	switch {
	case errors.Is(err, core.ErrCellReserved):
		return "Can't build on the start or end tile"
	case errors.Is(err, core.ErrCellOccupied):
		return "Water is already in that pipe"
	default:
		return err.Error()
	}
}

func (g *Game) handleEvent(e core.FlowEvent) {
	switch e.Kind {
	case core.PieceFilled:
		g.message = fmt.Sprintf("+%d", e.Points)
	case core.Leaked:
		g.message = fmt.Sprintf("Leak at %s", e.Position)
	case core.TimedOut:
		g.message = "Out of time"
	case core.Reached:
		g.message = "The water made it!"
	}
}

// finish records the level result once the flow is done.
func (g *Game) finish() {
	g.finished = true
	won := g.flow.Outcome() == core.Won
	reason := core.Leaked
	switch {
	case won:
		reason = core.Reached
	case g.timedOut():
		reason = core.TimedOut
	}

	next := 0
	if won {
		g.runScore += g.level.Points()
		if n, ok := g.opts.Loader.Next(g.levelNumber); ok {
			next = n
		}
	}
	g.result = Result{
		Level:   g.levelNumber,
		Won:     won,
		Reason:  reason,
		Points:  g.level.Points(),
		Elapsed: g.flow.Elapsed(),
		Next:    next,
	}
}

func (g *Game) timedOut() bool {
	left, ok := g.flow.TimeLeft()
	return ok && left == 0
}

// continueRun moves on after a level ended: to the next level after a
// win, or a retry after a loss.
func (g *Game) continueRun() {
	switch {
	case g.allCleared:
		return
	case !g.result.Won:
		g.loadLevel(g.levelNumber)
	case g.result.Next == 0:
		g.allCleared = true
	default:
		g.loadLevel(g.result.Next)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Level:    g.levelNumber,
		GameOver: g.finished,
		Won:      g.finished && g.result.Won,
		Paused:   g.paused,
	}
	if g.level != nil {
		st.Score = g.level.Points()
	}
	return st
}

// Result returns how the last level ended. Only meaningful after a step
// reported Finished.
func (g *Game) Result() Result {
	return g.result
}

// RunScore returns the points collected on levels won in this run.
func (g *Game) RunScore() int {
	return g.runScore
}

// Err returns the error that stopped the game from loading a level.
func (g *Game) Err() error {
	return g.err
}

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Position {
	return g.cursor
}

// Field returns the current field, or nil when no level is loaded.
func (g *Game) Field() *core.Field {
	return g.field
}

// Queue returns the current piece queue.
func (g *Game) Queue() *core.PieceQueue {
	return g.queue
}

// Flow returns the current flow.
func (g *Game) Flow() *core.Flow {
	return g.flow
}
