package level

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/gridcrawl/internal/grid"
)

// Kind identifies an Interactable variant.
type Kind int

const (
	// KindChest holds loot.
	KindChest Kind = iota
	// KindDoor is reserved and does nothing when activated.
	KindDoor
	// KindTeleporter moves the actor, possibly to another level.
	KindTeleporter
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindChest:
		return "chest"
	case KindDoor:
		return "door"
	case KindTeleporter:
		return "teleporter"
	default:
		return "unknown"
	}
}

// Interactable is a fixed object bound to one grid cell. The variants are
// Chest, Door and Teleporter; no other type implements it.
type Interactable interface {
	Kind() Kind
	interactable()
}

// Loot is something that can be found in a chest.
type Loot int

const (
	// LootKey is written as "Key" in level files.
	LootKey Loot = iota
)

// String returns the loot name as written in level files.
func (l Loot) String() string {
	switch l {
	case LootKey:
		return "Key"
	default:
		return "Unknown"
	}
}

// ParseLoot parses a loot name. Names are case-sensitive.
func ParseLoot(s string) (Loot, error) {
	switch s {
	case "Key":
		return LootKey, nil
	}
	return LootKey, fmt.Errorf("unknown loot %q", s)
}

// UnmarshalYAML decodes loot from its name.
func (l *Loot) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseLoot(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = parsed
	return nil
}

// Chest holds a single piece of loot.
type Chest struct {
	Loot Loot
}

// Kind implements Interactable.
func (Chest) Kind() Kind    { return KindChest }
func (Chest) interactable() {}

// Door is reserved. Activating it currently does nothing.
type Door struct{}

// Kind implements Interactable.
func (Door) Kind() Kind    { return KindDoor }
func (Door) interactable() {}

// Teleporter moves the activating actor to Destination. An empty Level keeps
// the actor on the current level; otherwise the named level is swapped in and
// the actor spawns at Destination there.
type Teleporter struct {
	Destination grid.Position
	Level       string
}

// Kind implements Interactable.
func (Teleporter) Kind() Kind    { return KindTeleporter }
func (Teleporter) interactable() {}

// CrossLevel returns true if the teleporter leads to another level.
func (t Teleporter) CrossLevel() bool {
	return t.Level != ""
}

// String describes the teleporter for logs.
func (t Teleporter) String() string {
	if t.CrossLevel() {
		return fmt.Sprintf("teleporter to %s on %s", t.Destination, t.Level)
	}
	return fmt.Sprintf("teleporter to %s", t.Destination)
}
