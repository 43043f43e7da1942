// Package levels resolves level numbers to level definitions.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/levels/formats"
)

//go:embed data/*
var defaultFS embed.FS

// Payload is the raw content of one level file.
type Payload struct {
	Number int
	Name   string // File name within the source
	Ext    string // Lowercase extension, e.g. ".json"
	Data   []byte
}

// Source maps level numbers to payloads.
type Source interface {
	// Payload returns the payload for a level or an ErrLevelNotFound error.
	Payload(number int) (Payload, error)
	// Numbers returns every available level number in ascending order.
	Numbers() ([]int, error)
}

// levelFile matches level-NNN.ext file names.
var levelFile = regexp.MustCompile(`^level-(\d+)(\.[A-Za-z]+)$`)

// FSSource reads level-NNN.json|yaml|yml files from the root of an fs.FS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Default returns the embedded level pack.
func Default() *FSSource {
	sub, err := fs.Sub(defaultFS, "data")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return NewFSSource(sub)
}

// Dir returns a source reading from a directory on disk.
// A leading ~ is expanded to the home directory.
func Dir(dir string) (*FSSource, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("levels: get home dir: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("levels: open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("levels: %s is not a directory", dir)
	}
	return NewFSSource(os.DirFS(dir)), nil
}

// entries returns the level files keyed by number. When several files
// share a number the first supported one in directory order wins.
func (s *FSSource) entries() (map[int]string, error) {
	dirEntries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: read dir: %w", err)
	}

	files := make(map[int]string)
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		m := levelFile.FindStringSubmatch(e.Name())
		if m == nil || !slices.Contains(formats.FormatExtensions(), strings.ToLower(m[2])) {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if _, dup := files[n]; !dup {
			files[n] = e.Name()
		}
	}
	return files, nil
}

// Numbers returns every available level number in ascending order.
func (s *FSSource) Numbers() ([]int, error) {
	files, err := s.entries()
	if err != nil {
		return nil, err
	}
	nums := make([]int, 0, len(files))
	for n := range files {
		nums = append(nums, n)
	}
	slices.Sort(nums)
	return nums, nil
}

// Payload returns the payload for a level.
func (s *FSSource) Payload(number int) (Payload, error) {
	files, err := s.entries()
	if err != nil {
		return Payload{}, err
	}
	name, ok := files[number]
	if !ok {
		return Payload{}, core.NotFound(number)
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return Payload{}, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Payload{
		Number: number,
		Name:   name,
		Ext:    strings.ToLower(path.Ext(name)),
		Data:   data,
	}, nil
}
