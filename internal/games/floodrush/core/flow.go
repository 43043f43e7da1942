package core

import (
	"math"
	"time"
)

// Flow defaults.
const (
	DefaultFillRate    = 0.25
	DefaultStartDelay  = 8 * time.Second
	DefaultFastForward = 8.0
	minSpeedFactor     = 0.1
	epsilon            = 1e-9
)

// FlowOptions configures the water simulation.
type FlowOptions struct {
	// FillRate is the fraction of a piece filled per second at game speed 1
	// and speed multiplier 1.
	FillRate float64
	// StartDelay is the time before water leaves the start tile.
	StartDelay time.Duration
	// FastForward multiplies the rate once FastForward is called.
	FastForward float64
}

// FlowEventKind identifies what happened during an Advance call.
type FlowEventKind uint8

const (
	PieceFilled FlowEventKind = iota
	Leaked
	Reached
	TimedOut
)

// String returns the string representation of an event kind.
func (k FlowEventKind) String() string {
	switch k {
	case PieceFilled:
		return "PieceFilled"
	case Leaked:
		return "Leaked"
	case Reached:
		return "Reached"
	case TimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// FlowEvent is a single simulation event.
type FlowEvent struct {
	Kind     FlowEventKind
	Position Position
	Points   int // Points scored by a PieceFilled event
	Total    int // Level score after the event
}

// Outcome is the result of a level's flow.
type Outcome uint8

const (
	Running Outcome = iota
	Won
	Lost
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case Running:
		return "Running"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Flow drives water through a field. Time only moves when the caller
// calls Advance.
type Flow struct {
	field *Field
	level *Level
	opts  FlowOptions

	elapsed  float64 // seconds since level start
	started  bool
	outcome  Outcome
	speedup  float64
	used     map[channelKey]bool
	current  *PipeSection
	pos      Position
	exit     Connection
	progress float64
}

// NewFlow creates a flow for the field. Zero options use the defaults.
func NewFlow(field *Field, opts FlowOptions) *Flow {
	if opts.FillRate <= 0 {
		opts.FillRate = DefaultFillRate
	}
	if opts.StartDelay < 0 {
		opts.StartDelay = 0
	}
	if opts.FastForward <= 1 {
		opts.FastForward = DefaultFastForward
	}
	return &Flow{
		field:   field,
		level:   field.Level(),
		opts:    opts,
		speedup: 1,
		used:    make(map[channelKey]bool),
	}
}

// Elapsed returns the simulated time since the level started.
func (fl *Flow) Elapsed() time.Duration {
	return time.Duration(fl.elapsed * float64(time.Second))
}

// Started reports whether water has left the start tile.
func (fl *Flow) Started() bool { return fl.started }

// StartsIn returns the time left before water leaves the start tile.
func (fl *Flow) StartsIn() time.Duration {
	left := fl.opts.StartDelay.Seconds() - fl.elapsed
	if fl.started || left <= 0 {
		return 0
	}
	return time.Duration(left * float64(time.Second))
}

// TimeLeft returns the time left before the flood timeout, and false when
// the level has no timeout.
func (fl *Flow) TimeLeft() (time.Duration, bool) {
	timeout := fl.level.FloodTimeout()
	if timeout <= 0 {
		return 0, false
	}
	left := max(float64(timeout)-fl.elapsed, 0)
	return time.Duration(left * float64(time.Second)), true
}

// Outcome returns Running until the water reaches the end or is lost.
func (fl *Flow) Outcome() Outcome { return fl.outcome }

// Done reports whether the flow has finished.
func (fl *Flow) Done() bool { return fl.outcome != Running }

// Current returns the piece being filled, its position and fill progress.
func (fl *Flow) Current() (*PipeSection, Position, float64) {
	return fl.current, fl.pos, fl.progress
}

// FastForward speeds up the rest of the flow. Water that has not started
// yet starts immediately.
func (fl *Flow) FastForward() {
	fl.speedup = fl.opts.FastForward
	if !fl.started {
		fl.elapsed = max(fl.elapsed, fl.opts.StartDelay.Seconds())
	}
}

// FastForwarding reports whether FastForward has been called.
func (fl *Flow) FastForwarding() bool { return fl.speedup > 1 }

// rate is the fill fraction per second for the current piece.
func (fl *Flow) rate() float64 {
	speed := math.Max(fl.current.SpeedMultiplier(), minSpeedFactor)
	return fl.opts.FillRate * float64(fl.level.GameSpeed()) * speed * fl.speedup
}

// Advance moves the simulation forward by dt and returns what happened.
func (fl *Flow) Advance(dt time.Duration) []FlowEvent {
	var events []FlowEvent
	remaining := dt.Seconds()

	for remaining > epsilon && !fl.Done() {
		untilTimeout := math.Inf(1)
		if timeout := fl.level.FloodTimeout(); timeout > 0 {
			untilTimeout = float64(timeout) - fl.elapsed
		}

		var untilMilestone float64
		if !fl.started {
			untilMilestone = fl.opts.StartDelay.Seconds() - fl.elapsed
		} else {
			untilMilestone = (1 - fl.progress) / fl.rate()
		}

		step := math.Max(math.Min(remaining, math.Min(untilTimeout, untilMilestone)), 0)
		remaining -= step
		fl.elapsed += step
		if fl.started {
			fl.progress += step * fl.rate()
		}

		if untilTimeout-step <= epsilon {
			fl.outcome = Lost
			events = append(events, FlowEvent{Kind: TimedOut, Position: fl.pos, Total: fl.level.Points()})
			break
		}
		if untilMilestone-step > epsilon {
			continue
		}
		if !fl.started {
			events = fl.leaveStart(events)
		} else {
			events = fl.fill(events)
		}
	}

	// The start delay may already be over before any time is passed in,
	// e.g. with a zero delay or after FastForward.
	if !fl.started && !fl.Done() && fl.elapsed+epsilon >= fl.opts.StartDelay.Seconds() {
		events = fl.leaveStart(events)
	}
	return events
}

func (fl *Flow) leaveStart(events []FlowEvent) []FlowEvent {
	fl.started = true
	next, from, ok := fl.field.firstStep()
	if !ok {
		fl.pos = fl.level.Start()
		return fl.leak(events)
	}
	return fl.enter(events, next, from)
}

// enter moves water into the cell at p from side from.
func (fl *Flow) enter(events []FlowEvent, p Position, from Connection) []FlowEvent {
	fl.current = nil
	fl.pos = p
	if fl.field.IsEnd(p) {
		fl.outcome = Won
		return append(events, FlowEvent{Kind: Reached, Position: p, Total: fl.level.Points()})
	}

	piece := fl.field.At(p)
	if piece == nil || fl.field.IsStart(p) {
		return fl.leak(events)
	}
	key := channelKey{pos: p, channel: piece.channel(from)}
	if key.channel < 0 || fl.used[key] {
		return fl.leak(events)
	}
	if piece.State() == Placed || piece.State() == Connected {
		if err := orient(piece, from); err != nil {
			return fl.leak(events)
		}
	}
	if piece.State() == Placed {
		if err := piece.Connect(); err != nil {
			return fl.leak(events)
		}
	}
	if err := piece.StartFlow(); err != nil {
		return fl.leak(events)
	}

	fl.used[key] = true
	fl.current = piece
	fl.exit, _ = piece.Route(from)
	fl.progress = 0
	return events
}

// fill completes the current piece, scores it and moves on.
func (fl *Flow) fill(events []FlowEvent) []FlowEvent {
	piece := fl.current
	if err := piece.CompleteFill(); err != nil {
		return fl.leak(events)
	}
	pts := piece.PointsForCurrentFlow()
	total, _ := fl.level.AddPoints(pts)
	events = append(events, FlowEvent{Kind: PieceFilled, Position: fl.pos, Points: pts, Total: total})

	next, ok := fl.pos.Step(fl.exit)
	if !ok || !fl.field.Dimensions().Contains(next) {
		return fl.leak(events)
	}
	return fl.enter(events, next, fl.exit.Opposite())
}

func (fl *Flow) leak(events []FlowEvent) []FlowEvent {
	fl.current = nil
	fl.outcome = Lost
	return append(events, FlowEvent{Kind: Leaked, Position: fl.pos, Total: fl.level.Points()})
}
