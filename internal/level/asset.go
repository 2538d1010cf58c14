package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/gridcrawl/internal/grid"
)

// Extension is the file extension of level definitions.
const Extension = ".lvl"

// ErrMalformedLevel is returned when a level definition cannot be decoded.
var ErrMalformedLevel = errors.New("malformed level")

// levelFile is the on-disk layout of a .lvl file.
type levelFile struct {
	Grid          [][]Tile          `yaml:"grid"`
	StartPos      grid.Position     `yaml:"start_pos"`
	Interactables []interactableDef `yaml:"interactables"`
	NextLevel     string            `yaml:"next_level"`
	EndPos        *grid.Position    `yaml:"end_pos"`
}

// interactableDef carries exactly one of Chest, Door or Teleporter.
type interactableDef struct {
	At         grid.Position  `yaml:"at"`
	Chest      *Loot          `yaml:"chest"`
	Door       *struct{}      `yaml:"door"`
	Teleporter *teleporterDef `yaml:"teleporter"`
}

type teleporterDef struct {
	GridPosition grid.Position `yaml:"grid_position"`
	Level        string        `yaml:"level"`
}

func (d interactableDef) build() (Interactable, error) {
	var found []Interactable
	if d.Chest != nil {
		found = append(found, Chest{Loot: *d.Chest})
	}
	if d.Door != nil {
		found = append(found, Door{})
	}
	if d.Teleporter != nil {
		found = append(found, Teleporter{
			Destination: d.Teleporter.GridPosition,
			Level:       d.Teleporter.Level,
		})
	}
	if len(found) != 1 {
		return nil, fmt.Errorf("interactable at %s must have exactly one of chest, door, teleporter (found %d)", d.At, len(found))
	}
	return found[0], nil
}

// Decode parses a level definition. Any failure wraps ErrMalformedLevel.
func Decode(name string, data []byte) (*Level, error) {
	def, err := decodeDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedLevel, name, err)
	}
	l, err := New(name, def)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedLevel, name, err)
	}
	return l, nil
}

func decodeDefinition(data []byte) (Definition, error) {
	var file levelFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return Definition{}, errors.New("empty document")
		}
		return Definition{}, err
	}

	def := Definition{
		Grid:          file.Grid,
		StartPos:      file.StartPos,
		Interactables: make(map[grid.Position]Interactable, len(file.Interactables)),
		NextLevel:     file.NextLevel,
	}

	for _, entry := range file.Interactables {
		if _, dup := def.Interactables[entry.At]; dup {
			return Definition{}, fmt.Errorf("duplicate interactable at %s", entry.At)
		}
		it, err := entry.build()
		if err != nil {
			return Definition{}, err
		}
		def.Interactables[entry.At] = it
	}

	if file.NextLevel != "" {
		if file.EndPos == nil {
			return Definition{}, errors.New("next_level is set without end_pos")
		}
		def.EndPos = *file.EndPos
	}

	return def, nil
}
