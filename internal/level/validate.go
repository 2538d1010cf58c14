package level

import (
	"fmt"
)

// Validate reports authoring problems that decoding does not catch:
// spawn points or teleporter destinations on Void or outside the grid, and
// references to levels missing from the registry. It never fails a load;
// the results are meant for tooling.
func Validate(l *Level, r *Registry) []error {
	var problems []error

	if !l.IsPassable(l.StartPos()) {
		problems = append(problems, fmt.Errorf("%s: start_pos %s is not passable", l.Name(), l.StartPos()))
	}

	for _, p := range l.Interactables() {
		tp, ok := p.Interactable.(Teleporter)
		if !ok {
			continue
		}
		target := l
		if tp.CrossLevel() {
			other, err := r.Get(tp.Level)
			if err != nil {
				problems = append(problems, fmt.Errorf("%s: teleporter at %s: %w", l.Name(), p.At, err))
				continue
			}
			target = other
		}
		if !target.IsPassable(tp.Destination) {
			problems = append(problems, fmt.Errorf("%s: teleporter at %s leads to %s on %s which is not passable",
				l.Name(), p.At, tp.Destination, target.Name()))
		}
	}

	if next, end, ok := l.Progression(); ok {
		if !r.Has(next) {
			problems = append(problems, fmt.Errorf("%s: next_level: %w %q", l.Name(), ErrUnknownLevel, next))
		}
		if !l.IsPassable(end) {
			problems = append(problems, fmt.Errorf("%s: end_pos %s is not passable", l.Name(), end))
		}
	}

	return problems
}
