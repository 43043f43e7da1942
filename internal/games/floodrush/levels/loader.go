package levels

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/levels/formats"
)

// Loader decodes levels from a Source.
type Loader struct {
	src    Source
	logger *log.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(src Source, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{src: src, logger: logger}
}

// Load decodes a single level. A missing level returns ErrLevelNotFound.
func (l *Loader) Load(number int) (*core.Level, error) {
	p, err := l.src.Payload(number)
	if err != nil {
		return nil, err
	}
	lvl, err := formats.Parse(p.Data, p.Ext)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", p.Name, err)
	}
	if lvl.Number() != number {
		return nil, fmt.Errorf("levels: %s: %w", p.Name,
			core.Malformed("number", fmt.Errorf("file declares level %d", lvl.Number())))
	}
	return lvl, nil
}

// LoadAll decodes every level in ascending order, skipping invalid files.
func (l *Loader) LoadAll() ([]*core.Level, error) {
	nums, err := l.src.Numbers()
	if err != nil {
		return nil, err
	}

	lvls := make([]*core.Level, 0, len(nums))
	for _, n := range nums {
		lvl, err := l.Load(n)
		if err != nil {
			// Skip invalid files
			l.logger.Warn("skipping level", "number", n, "err", err)
			continue
		}
		l.logger.Debug("loaded level", "number", n, "name", lvl.Name())
		lvls = append(lvls, lvl)
	}
	return lvls, nil
}

// Numbers returns the available level numbers.
func (l *Loader) Numbers() ([]int, error) {
	return l.src.Numbers()
}

// Next returns the first available level number after n.
func (l *Loader) Next(n int) (int, bool) {
	nums, err := l.src.Numbers()
	if err != nil {
		return 0, false
	}
	for _, m := range nums {
		if m > n {
			return m, true
		}
	}
	return 0, false
}

// First returns the lowest available level number.
func (l *Loader) First() (int, error) {
	nums, err := l.src.Numbers()
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 0, errors.New("levels: no levels available")
	}
	return nums[0], nil
}

// LoadFile decodes a single level file from disk, for validation.
func LoadFile(path string) (*core.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	lvl, err := formats.Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return lvl, nil
}
