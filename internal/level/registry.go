package level

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownLevel is returned when a level name is not in the registry.
var ErrUnknownLevel = errors.New("unknown level")

// Registry holds loaded levels addressable by name. It is safe for
// concurrent use; levels themselves are immutable.
type Registry struct {
	mu     sync.RWMutex
	levels map[string]*Level
}

// NewRegistry creates a registry holding the given levels.
func NewRegistry(levels ...*Level) *Registry {
	r := &Registry{levels: make(map[string]*Level, len(levels))}
	for _, l := range levels {
		r.levels[l.Name()] = l
	}
	return r
}

// Add inserts a level, replacing any previous level with the same name.
// Holders of the previous handle keep seeing the old level.
func (r *Registry) Add(l *Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[l.Name()] = l
}

// Get returns the level with the given name.
func (r *Registry) Get(name string) (*Level, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.levels[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLevel, name)
	}
	return l, nil
}

// Has reports whether a level with the given name is loaded.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.levels[name]
	return ok
}

// Names returns all level names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.levels))
	for name := range r.levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of loaded levels.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.levels)
}
