// Package core provides the pipe rules engine for FloodRush.
// This package is UI-agnostic and deterministic: every operation is a pure
// computation or an in-place mutation, and randomness comes from an injected RNG.
package core

import "fmt"

// Position is a cell coordinate on the play field.
// X increases to the right, Y increases downward (screen coordinates).
type Position struct {
	X int
	Y int
}

// NewPosition creates a position, rejecting negative components.
func NewPosition(x, y int) (Position, error) {
	if x < 0 {
		return Position{}, invalid(CodeInvalidCoordinate, "x",
			fmt.Sprintf("x coordinate cannot be negative (got %d)", x))
	}
	if y < 0 {
		return Position{}, invalid(CodeInvalidCoordinate, "y",
			fmt.Sprintf("y coordinate cannot be negative (got %d)", y))
	}
	return Position{X: x, Y: y}, nil
}

// P is a convenience constructor for positions known to be valid.
// It panics on negative input and is intended for literals and tests.
func P(x, y int) Position {
	p, err := NewPosition(x, y)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring position on the given side and whether it
// stays non-negative. Upper bounds are checked by FieldDimensions.Contains.
func (p Position) Step(side Connection) (Position, bool) {
	dx, dy := side.Delta()
	x, y := p.X+dx, p.Y+dy
	if x < 0 || y < 0 {
		return Position{}, false
	}
	return Position{X: x, Y: y}, true
}

// FieldDimensions is the size of a play field in cells.
type FieldDimensions struct {
	Width  int
	Height int
}

// NewFieldDimensions creates field dimensions; both sides must be positive.
func NewFieldDimensions(width, height int) (FieldDimensions, error) {
	if width <= 0 {
		return FieldDimensions{}, invalid(CodeInvalidDimension, "width",
			fmt.Sprintf("width must be greater than zero (got %d)", width))
	}
	if height <= 0 {
		return FieldDimensions{}, invalid(CodeInvalidDimension, "height",
			fmt.Sprintf("height must be greater than zero (got %d)", height))
	}
	return FieldDimensions{Width: width, Height: height}, nil
}

// Contains reports whether p lies strictly inside the field.
func (d FieldDimensions) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < d.Width && p.Y < d.Height
}

// Cells returns the number of cells in the field.
func (d FieldDimensions) Cells() int {
	return d.Width * d.Height
}

// String returns a WxH representation.
func (d FieldDimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Connection is one of the four cardinal sides of a cell.
type Connection uint8

const (
	North Connection = iota
	East
	South
	West
)

// Connections lists all sides in scan order.
var Connections = [4]Connection{North, East, South, West}

// String returns the string representation of a connection.
func (c Connection) String() string {
	switch c {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset of the neighbour on this side.
// North decreases Y, South increases Y.
func (c Connection) Delta() (dx, dy int) {
	switch c {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the side facing this one.
func (c Connection) Opposite() Connection {
	switch c {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return c
	}
}

// Valid reports whether c is one of the four sides.
func (c Connection) Valid() bool {
	return c <= West
}
