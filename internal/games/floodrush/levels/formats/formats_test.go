package formats

import (
	"errors"
	"testing"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
)

const yamlLevel = `
number: 2
name: Downhill
fieldDimensions: {width: 8, height: 5}
startPosition: {x: 0, y: 0}
endPosition: {x: 7, y: 4}
gameSpeed: 1
floodTimeout: 120
excludedTileTypes: [2]
`

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(yamlLevel))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if lvl.Number() != 2 || lvl.Name() != "Downhill" {
		t.Errorf("unexpected level %d %q", lvl.Number(), lvl.Name())
	}
	if lvl.End() != core.P(7, 4) {
		t.Errorf("expected end (7,4), got %v", lvl.End())
	}
	if !lvl.ExcludesType(core.CrossSection) {
		t.Error("expected cross sections excluded")
	}
}

func TestParseYAMLErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", core.ErrMalformedLevelData},
		{"unknown key", yamlLevel + "bonus: 3\n", core.ErrMalformedLevelData},
		{"missing speed", "number: 1\nfieldDimensions: {width: 5, height: 5}\nstartPosition: {x: 0, y: 0}\nendPosition: {x: 4, y: 4}\nfloodTimeout: 0\n", core.ErrMalformedLevelData},
		{"bad type", "number: one\n", core.ErrMalformedLevelData},
		{"end outside", "number: 1\nfieldDimensions: {width: 5, height: 5}\nstartPosition: {x: 0, y: 0}\nendPosition: {x: 4, y: 9}\ngameSpeed: 1\nfloodTimeout: 0\n", core.ErrPositionOutOfBounds},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tc.data)); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseRoutesByExtension(t *testing.T) {
	jsonLevel := `{"number":1,"fieldDimensions":{"width":5,"height":5},"startPosition":{"x":0,"y":0},"endPosition":{"x":4,"y":4},"gameSpeed":5,"floodTimeout":30}`

	if _, err := Parse([]byte(jsonLevel), ".JSON"); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := Parse([]byte(yamlLevel), ".yml"); err != nil {
		t.Errorf("yml: %v", err)
	}
	if _, err := Parse([]byte(jsonLevel), ".txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	lvl, err := ParseYAML([]byte(yamlLevel))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	out, err := MarshalYAML(lvl)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	again, err := ParseYAML(out)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, out)
	}
	if again.Name() != lvl.Name() || again.Start() != lvl.Start() || again.GameSpeed() != lvl.GameSpeed() {
		t.Errorf("round trip changed the level:\n%s", out)
	}
}
