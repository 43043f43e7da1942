// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
)

// ParseJSON parses a JSON level payload.
func ParseJSON(data []byte) (*core.Level, error) {
	return core.DecodeLevel(data)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string) (*core.Level, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
