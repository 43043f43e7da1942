package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Game speed bounds for a level.
const (
	MinGameSpeed = 1
	MaxGameSpeed = 10
)

// Level is a puzzle definition plus its running score.
type Level struct {
	number       int
	name         string
	points       int
	dimensions   FieldDimensions
	start        Position
	end          Position
	gameSpeed    int
	floodTimeout int
	excluded     []int
}

// NewLevel validates and creates a level with zero points.
// Validation runs in order: number, game speed, flood timeout, start, end.
func NewLevel(number int, dims FieldDimensions, start, end Position, gameSpeed, floodTimeout int, excluded ...int) (*Level, error) {
	if number <= 0 {
		return nil, invalid(CodeInvalidLevelNumber, "number",
			fmt.Sprintf("level number must be positive (got %d)", number))
	}
	if gameSpeed < MinGameSpeed || gameSpeed > MaxGameSpeed {
		return nil, invalid(CodeInvalidGameSpeed, "gameSpeed",
			fmt.Sprintf("game speed must be within [%d,%d] (got %d)", MinGameSpeed, MaxGameSpeed, gameSpeed))
	}
	if floodTimeout < 0 {
		return nil, invalid(CodeInvalidFloodTimeout, "floodTimeout",
			fmt.Sprintf("flood timeout cannot be negative (got %d)", floodTimeout))
	}
	if !dims.Contains(start) {
		return nil, invalid(CodePositionOutOfBounds, "start",
			fmt.Sprintf("start position %s is outside the %s field", start, dims))
	}
	if !dims.Contains(end) {
		return nil, invalid(CodePositionOutOfBounds, "end",
			fmt.Sprintf("end position %s is outside the %s field", end, dims))
	}

	return &Level{
		number:       number,
		dimensions:   dims,
		start:        start,
		end:          end,
		gameSpeed:    gameSpeed,
		floodTimeout: floodTimeout,
		excluded:     slices.Clone(excluded),
	}, nil
}

// Number returns the level number.
func (l *Level) Number() int { return l.number }

// Name returns the display name, falling back to "Level N".
func (l *Level) Name() string {
	if l.name != "" {
		return l.name
	}
	return fmt.Sprintf("Level %d", l.number)
}

// Points returns the running score.
func (l *Level) Points() int { return l.points }

// Dimensions returns the field size.
func (l *Level) Dimensions() FieldDimensions { return l.dimensions }

// Start returns the start tile.
func (l *Level) Start() Position { return l.start }

// End returns the end tile.
func (l *Level) End() Position { return l.end }

// GameSpeed returns the speed in [1,10].
func (l *Level) GameSpeed() int { return l.gameSpeed }

// FloodTimeout returns the time limit in seconds; 0 disables it.
func (l *Level) FloodTimeout() int { return l.floodTimeout }

// ExcludedTileTypes returns a copy of the excluded piece type ordinals.
func (l *Level) ExcludedTileTypes() []int {
	return slices.Clone(l.excluded)
}

// ExcludesType reports whether pieces of type t are excluded from the level.
func (l *Level) ExcludesType(t PipeType) bool {
	return slices.Contains(l.excluded, int(t))
}

// AddPoints adds n to the score and returns the new total.
func (l *Level) AddPoints(n int) (int, error) {
	if n < 0 {
		return l.points, invalid(CodeNegativePointsDelta, "points",
			fmt.Sprintf("cannot add negative points (got %d)", n))
	}
	l.points += n
	return l.points, nil
}

// ResetPoints sets the score back to zero.
func (l *Level) ResetPoints() {
	l.points = 0
}

// LevelData is the wire shape of a level payload.
// Pointer fields distinguish missing keys from zero values.
type LevelData struct {
	Number            *int            `json:"number" yaml:"number"`
	Name              string          `json:"name,omitempty" yaml:"name,omitempty"`
	FieldDimensions   *DimensionsData `json:"fieldDimensions" yaml:"fieldDimensions"`
	StartPosition     *PositionData   `json:"startPosition" yaml:"startPosition"`
	EndPosition       *PositionData   `json:"endPosition" yaml:"endPosition"`
	GameSpeed         *int            `json:"gameSpeed" yaml:"gameSpeed"`
	FloodTimeout      *int            `json:"floodTimeout" yaml:"floodTimeout"`
	ExcludedTileTypes []int           `json:"excludedTileTypes,omitempty" yaml:"excludedTileTypes,omitempty"`
}

// DimensionsData is the wire shape of field dimensions.
type DimensionsData struct {
	Width  *int `json:"width" yaml:"width"`
	Height *int `json:"height" yaml:"height"`
}

// PositionData is the wire shape of a position.
type PositionData struct {
	X *int `json:"x" yaml:"x"`
	Y *int `json:"y" yaml:"y"`
}

var errMissing = errors.New("required field missing")

// DecodeLevel parses a JSON level payload.
// Schema problems are reported as ErrMalformedLevelData; a well-formed
// payload that breaks a level rule returns that rule's error.
func DecodeLevel(payload []byte) (*Level, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()

	var data LevelData
	if err := dec.Decode(&data); err != nil {
		return nil, Malformed("", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, Malformed("", errors.New("trailing data after level object"))
	}
	return LevelFromData(data)
}

// LevelFromData builds a level from an already parsed payload.
func LevelFromData(data LevelData) (*Level, error) {
	switch {
	case data.Number == nil:
		return nil, Malformed("number", errMissing)
	case data.FieldDimensions == nil:
		return nil, Malformed("fieldDimensions", errMissing)
	case data.StartPosition == nil:
		return nil, Malformed("startPosition", errMissing)
	case data.EndPosition == nil:
		return nil, Malformed("endPosition", errMissing)
	case data.GameSpeed == nil:
		return nil, Malformed("gameSpeed", errMissing)
	case data.FloodTimeout == nil:
		return nil, Malformed("floodTimeout", errMissing)
	}

	dims, err := data.FieldDimensions.toDimensions()
	if err != nil {
		return nil, Malformed("fieldDimensions", err)
	}
	start, err := data.StartPosition.toPosition()
	if err != nil {
		return nil, Malformed("startPosition", err)
	}
	end, err := data.EndPosition.toPosition()
	if err != nil {
		return nil, Malformed("endPosition", err)
	}

	lvl, err := NewLevel(*data.Number, dims, start, end, *data.GameSpeed, *data.FloodTimeout, data.ExcludedTileTypes...)
	if err != nil {
		return nil, err
	}
	lvl.name = data.Name
	return lvl, nil
}

func (d *DimensionsData) toDimensions() (FieldDimensions, error) {
	if d.Width == nil || d.Height == nil {
		return FieldDimensions{}, errMissing
	}
	return NewFieldDimensions(*d.Width, *d.Height)
}

func (p *PositionData) toPosition() (Position, error) {
	if p.X == nil || p.Y == nil {
		return Position{}, errMissing
	}
	return NewPosition(*p.X, *p.Y)
}

// Data returns the wire shape of the level, used when exporting levels.
func (l *Level) Data() LevelData {
	number, speed, timeout := l.number, l.gameSpeed, l.floodTimeout
	w, h := l.dimensions.Width, l.dimensions.Height
	sx, sy, ex, ey := l.start.X, l.start.Y, l.end.X, l.end.Y
	return LevelData{
		Number:            &number,
		Name:              l.name,
		FieldDimensions:   &DimensionsData{Width: &w, Height: &h},
		StartPosition:     &PositionData{X: &sx, Y: &sy},
		EndPosition:       &PositionData{X: &ex, Y: &ey},
		GameSpeed:         &speed,
		FloodTimeout:      &timeout,
		ExcludedTileTypes: l.ExcludedTileTypes(),
	}
}
