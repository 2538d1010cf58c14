package world

import "github.com/samdwyer/gridcrawl/internal/level"

// Scene owns whatever the presentation layer derives from a level, such as
// wall geometry. The world drives it during a swap: the previous level is
// always despawned before the next one is installed.
type Scene interface {
	Despawn(l *level.Level)
	Install(l *level.Level)
}

type nopScene struct{}

func (nopScene) Despawn(*level.Level) {}
func (nopScene) Install(*level.Level) {}
