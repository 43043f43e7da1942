package core

import "fmt"

// PipeType is the geometry family of a pipe piece.
type PipeType uint8

const (
	Straight PipeType = iota
	Corner
	CrossSection
)

// PipeTypes lists every pipe type in ordinal order.
var PipeTypes = [3]PipeType{Straight, Corner, CrossSection}

// String returns the string representation of a pipe type.
func (t PipeType) String() string {
	switch t {
	case Straight:
		return "Straight"
	case Corner:
		return "Corner"
	case CrossSection:
		return "CrossSection"
	default:
		return "Unknown"
	}
}

// PipeState is the lifecycle state of a pipe piece.
type PipeState uint8

const (
	Idle PipeState = iota
	Placed
	Connected
	Flowing
	Full
)

// String returns the string representation of a pipe state.
func (s PipeState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Placed:
		return "Placed"
	case Connected:
		return "Connected"
	case Flowing:
		return "Flowing"
	case Full:
		return "Full"
	default:
		return "Unknown"
	}
}

// FlowDirection selects which nominal side water enters by.
type FlowDirection uint8

const (
	Default FlowDirection = iota
	Reverse
)

// String returns the string representation of a flow direction.
func (d FlowDirection) String() string {
	if d == Reverse {
		return "Reverse"
	}
	return "Default"
}

// PipeOp names a lifecycle operation, used in transition errors.
type PipeOp string

const (
	OpPlace        PipeOp = "place"
	OpConnect      PipeOp = "connect"
	OpStartFlow    PipeOp = "start flow"
	OpCompleteFill PipeOp = "complete fill"
	OpReverse      PipeOp = "reverse"
)

// transition is a single forward edge of the lifecycle.
type transition struct {
	from PipeState
	to   PipeState
}

var transitions = map[PipeOp]transition{
	OpPlace:        {from: Idle, to: Placed},
	OpConnect:      {from: Placed, to: Connected},
	OpStartFlow:    {from: Connected, to: Flowing},
	OpCompleteFill: {from: Flowing, to: Full},
}

// PipeSection is a single placeable piece.
// Pieces are created Idle and advance strictly forward through
// Placed, Connected, Flowing and Full; only Reset moves them back.
type PipeSection struct {
	coordinate      Position
	pipeType        PipeType
	entry           Connection
	exit            Connection
	direction       FlowDirection
	speedMultiplier float64
	points          int
	secondaryPoints int
	hasSecondary    bool
	state           PipeState
	flowCount       int
}

// NewPipeSection validates and creates an Idle pipe piece.
// secondary is required for CrossSection pieces and ignored for others.
func NewPipeSection(coord Position, pipeType PipeType, entry, exit Connection, speed float64, points int, secondary *int) (*PipeSection, error) {
	if !(speed >= 0 && speed <= 1) {
		return nil, invalid(CodeInvalidSpeedMultiplier, "speedMultiplier",
			fmt.Sprintf("speed multiplier must be within [0,1] (got %g)", speed))
	}
	if points < 0 {
		return nil, invalid(CodeInvalidPoints, "points",
			fmt.Sprintf("points cannot be negative (got %d)", points))
	}
	if pipeType == CrossSection {
		if secondary == nil {
			return nil, invalid(CodeMissingSecondaryPoints, "secondaryPoints",
				"cross sections require secondary points")
		}
		if *secondary < 0 {
			return nil, invalid(CodeInvalidSecondaryPoints, "secondaryPoints",
				fmt.Sprintf("secondary points cannot be negative (got %d)", *secondary))
		}
	}
	if entry == exit {
		return nil, invalid(CodeSameEntryExit, "exitPoint",
			fmt.Sprintf("entry and exit cannot both be %s", entry))
	}
	if !legalPair(pipeType, entry, exit) {
		return nil, invalid(CodeInvalidConnectionCombination, "exitPoint",
			fmt.Sprintf("%s cannot connect %s to %s", pipeType, entry, exit))
	}

	p := &PipeSection{
		coordinate:      coord,
		pipeType:        pipeType,
		entry:           entry,
		exit:            exit,
		speedMultiplier: speed,
		points:          points,
	}
	if pipeType == CrossSection {
		p.secondaryPoints = *secondary
		p.hasSecondary = true
	}
	return p, nil
}

// legalPair reports whether entry and exit form a legal pair for the type.
// Callers have already rejected entry == exit.
func legalPair(t PipeType, entry, exit Connection) bool {
	if !entry.Valid() || !exit.Valid() {
		return false
	}
	switch t {
	case Straight:
		return entry.Opposite() == exit
	case Corner:
		return entry.Opposite() != exit
	case CrossSection:
		return true
	default:
		return false
	}
}

// Coordinate returns the cell the piece occupies.
func (p *PipeSection) Coordinate() Position { return p.coordinate }

// Type returns the pipe type.
func (p *PipeSection) Type() PipeType { return p.pipeType }

// EntryPoint returns the nominal entry side.
func (p *PipeSection) EntryPoint() Connection { return p.entry }

// ExitPoint returns the nominal exit side.
func (p *PipeSection) ExitPoint() Connection { return p.exit }

// Direction returns the current flow direction.
func (p *PipeSection) Direction() FlowDirection { return p.direction }

// SpeedMultiplier returns the piece's fill speed factor in [0,1].
func (p *PipeSection) SpeedMultiplier() float64 { return p.speedMultiplier }

// Points returns the primary score value.
func (p *PipeSection) Points() int { return p.points }

// SecondaryPoints returns the score for a second flow, if the piece has one.
func (p *PipeSection) SecondaryPoints() (int, bool) {
	return p.secondaryPoints, p.hasSecondary
}

// State returns the lifecycle state.
func (p *PipeSection) State() PipeState { return p.state }

// FlowCount returns how many flows have started through the piece.
func (p *PipeSection) FlowCount() int { return p.flowCount }

// MaxFlowCount is 2 for cross sections and 1 otherwise.
func (p *PipeSection) MaxFlowCount() int {
	if p.pipeType == CrossSection {
		return 2
	}
	return 1
}

// ActualEntryPoint returns the side water enters by, honouring direction.
func (p *PipeSection) ActualEntryPoint() Connection {
	if p.direction == Reverse {
		return p.exit
	}
	return p.entry
}

// ActualExitPoint returns the side water leaves by, honouring direction.
func (p *PipeSection) ActualExitPoint() Connection {
	if p.direction == Reverse {
		return p.entry
	}
	return p.exit
}

// PointsForCurrentFlow returns the score for the flow in progress.
// The second flow through a cross section scores its secondary points.
func (p *PipeSection) PointsForCurrentFlow() int {
	if p.pipeType != CrossSection || p.flowCount <= 1 {
		return p.points
	}
	if !p.hasSecondary {
		return 0
	}
	return p.secondaryPoints
}

// CanBeRemoved reports whether the piece may be swapped out of the field.
func (p *PipeSection) CanBeRemoved() bool {
	return p.state == Placed || p.state == Connected
}

// CanAcceptFlow reports whether StartFlow would succeed.
func (p *PipeSection) CanAcceptFlow() bool {
	if p.state == Connected {
		return true
	}
	return p.multiFlowOpen()
}

func (p *PipeSection) multiFlowOpen() bool {
	return p.MaxFlowCount() > 1 &&
		(p.state == Flowing || p.state == Full) &&
		p.flowCount < p.MaxFlowCount()
}

// Route returns the side water leaves by when it enters from side from.
// A cross section's secondary channel joins the two sides not used by
// its entry and exit.
func (p *PipeSection) Route(from Connection) (Connection, bool) {
	switch from {
	case p.entry:
		return p.exit, true
	case p.exit:
		return p.entry, true
	}
	if p.pipeType != CrossSection || !from.Valid() {
		return 0, false
	}
	for _, c := range Connections {
		if c != from && c != p.entry && c != p.exit {
			return c, true
		}
	}
	return 0, false
}

// channel returns 0 for the primary channel, 1 for a cross section's
// secondary channel and -1 when water cannot enter from side from.
func (p *PipeSection) channel(from Connection) int {
	if _, ok := p.Route(from); !ok {
		return -1
	}
	if from == p.entry || from == p.exit {
		return 0
	}
	return 1
}

// SetCoordinate moves an Idle piece to p.
func (p *PipeSection) SetCoordinate(pos Position) error {
	if p.state != Idle {
		return &TransitionError{Code: CodeInvalidTransition, Op: OpPlace, State: p.state}
	}
	p.coordinate = pos
	return nil
}

func (p *PipeSection) advance(op PipeOp) error {
	t := transitions[op]
	if p.state != t.from {
		return &TransitionError{Code: CodeInvalidTransition, Op: op, State: p.state}
	}
	p.state = t.to
	return nil
}

// Place moves an Idle piece onto the field.
func (p *PipeSection) Place() error { return p.advance(OpPlace) }

// Connect marks a Placed piece as part of the path from the start tile.
func (p *PipeSection) Connect() error { return p.advance(OpConnect) }

// StartFlow begins a flow through the piece. A cross section may take a
// second flow while Flowing or Full.
func (p *PipeSection) StartFlow() error {
	switch {
	case p.state == Connected:
	case p.multiFlowOpen():
	case p.MaxFlowCount() > 1 && (p.state == Flowing || p.state == Full):
		return &TransitionError{Code: CodeFlowCapacityExceeded, Op: OpStartFlow, State: p.state}
	default:
		return &TransitionError{Code: CodeInvalidTransition, Op: OpStartFlow, State: p.state}
	}
	p.state = Flowing
	p.flowCount++
	return nil
}

// CompleteFill marks a Flowing piece as Full.
func (p *PipeSection) CompleteFill() error { return p.advance(OpCompleteFill) }

// Reset returns the piece to Idle for reuse.
func (p *PipeSection) Reset() {
	p.state = Idle
	p.flowCount = 0
	p.direction = Default
}

// ReverseDirection toggles the flow direction before water arrives.
func (p *PipeSection) ReverseDirection() error {
	if p.state == Flowing || p.state == Full {
		return &TransitionError{Code: CodeCannotReverseWhileFlowing, Op: OpReverse, State: p.state}
	}
	if p.direction == Default {
		p.direction = Reverse
	} else {
		p.direction = Default
	}
	return nil
}

// String returns a short description for debugging.
func (p *PipeSection) String() string {
	return fmt.Sprintf("%s[%s->%s]@%s %s", p.pipeType, p.ActualEntryPoint(), p.ActualExitPoint(), p.coordinate, p.state)
}
