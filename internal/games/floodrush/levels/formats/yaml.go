package formats

import (
	"bytes"
	"errors"
	"io"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML level file. It accepts the same keys as the
// JSON payload.
func ParseYAML(data []byte) (*core.Level, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ld core.LevelData
	if err := dec.Decode(&ld); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, core.Malformed("", errors.New("empty document"))
		}
		return nil, core.Malformed("", err)
	}
	return core.LevelFromData(ld)
}

// MarshalYAML renders a level in the YAML file format.
func MarshalYAML(lvl *core.Level) ([]byte, error) {
	return yaml.Marshal(lvl.Data())
}
