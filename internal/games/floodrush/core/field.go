package core

import "fmt"

// Field is the play grid of a level. The start and end tiles are reserved
// and never hold pieces.
type Field struct {
	level *Level
	dims  FieldDimensions
	cells []*PipeSection
}

// NewField creates an empty field for the level.
func NewField(level *Level) *Field {
	dims := level.Dimensions()
	return &Field{
		level: level,
		dims:  dims,
		cells: make([]*PipeSection, dims.Cells()),
	}
}

// Level returns the level the field belongs to.
func (f *Field) Level() *Level { return f.level }

// Dimensions returns the field size.
func (f *Field) Dimensions() FieldDimensions { return f.dims }

func (f *Field) index(p Position) int {
	return p.Y*f.dims.Width + p.X
}

// At returns the piece at p, or nil when the cell is empty or outside.
func (f *Field) At(p Position) *PipeSection {
	if !f.dims.Contains(p) {
		return nil
	}
	return f.cells[f.index(p)]
}

// IsStart reports whether p is the start tile.
func (f *Field) IsStart(p Position) bool { return p == f.level.Start() }

// IsEnd reports whether p is the end tile.
func (f *Field) IsEnd(p Position) bool { return p == f.level.End() }

// Place puts an Idle piece at p. A removable piece already there is
// replaced, reset and returned to the caller. Call Trace afterwards to
// refresh connections.
func (f *Field) Place(p Position, piece *PipeSection) (*PipeSection, error) {
	if !f.dims.Contains(p) {
		return nil, invalid(CodePositionOutOfBounds, "position",
			fmt.Sprintf("position %s is outside the %s field", p, f.dims))
	}
	if f.IsStart(p) || f.IsEnd(p) {
		return nil, invalid(CodeCellReserved, "position",
			fmt.Sprintf("cell %s is reserved", p))
	}
	old := f.cells[f.index(p)]
	if old != nil && !old.CanBeRemoved() {
		return nil, invalid(CodeCellOccupied, "position",
			fmt.Sprintf("cell %s holds a %s piece", p, old.State()))
	}
	if err := piece.SetCoordinate(p); err != nil {
		return nil, err
	}
	if err := piece.Place(); err != nil {
		return nil, err
	}
	if old != nil {
		old.Reset()
	}
	f.cells[f.index(p)] = piece
	return old, nil
}

// channelKey identifies one channel of one cell.
type channelKey struct {
	pos     Position
	channel int
}

// firstStep finds the cell water leaves the start tile into: the first
// neighbour, in North, East, South, West order, that is the end tile or
// holds a piece with a channel facing the start.
func (f *Field) firstStep() (Position, Connection, bool) {
	start := f.level.Start()
	for _, side := range Connections {
		next, ok := start.Step(side)
		if !ok || !f.dims.Contains(next) {
			continue
		}
		if f.IsEnd(next) {
			return next, side.Opposite(), true
		}
		if piece := f.At(next); piece != nil {
			if _, ok := piece.Route(side.Opposite()); ok {
				return next, side.Opposite(), true
			}
		}
	}
	return Position{}, 0, false
}

// orient turns a piece so water entering from side from runs through its
// primary channel in the actual direction.
func orient(piece *PipeSection, from Connection) error {
	if piece.channel(from) != 0 || piece.ActualEntryPoint() == from {
		return nil
	}
	return piece.ReverseDirection()
}

// Trace follows the pipe path from the start tile, connecting every piece
// on it and orienting each one along the water's direction. Pieces that
// were connected but are no longer on the path drop back to Placed.
// It returns the path in flow order and whether it reaches the end tile.
func (f *Field) Trace() ([]Position, bool) {
	var path []Position
	onPath := make(map[Position]bool)
	seen := make(map[channelKey]bool)
	reached := false

	pos, from, ok := f.firstStep()
	for ok {
		if f.IsEnd(pos) {
			reached = true
			break
		}
		piece := f.At(pos)
		if piece == nil {
			break
		}
		key := channelKey{pos: pos, channel: piece.channel(from)}
		if key.channel < 0 || seen[key] {
			break
		}
		seen[key] = true

		if piece.State() == Placed || piece.State() == Connected {
			if err := orient(piece, from); err != nil {
				break
			}
			if piece.State() == Placed {
				if err := piece.Connect(); err != nil {
					break
				}
			}
		}
		if !onPath[pos] {
			onPath[pos] = true
			path = append(path, pos)
		}

		out, _ := piece.Route(from)
		pos, ok = pos.Step(out)
		ok = ok && f.dims.Contains(pos) && !f.IsStart(pos)
		from = out.Opposite()
	}

	for i, piece := range f.cells {
		if piece == nil || piece.State() != Connected {
			continue
		}
		p := Position{X: i % f.dims.Width, Y: i / f.dims.Width}
		if onPath[p] {
			continue
		}
		piece.Reset()
		_ = piece.Place()
	}
	return path, reached
}
