// Package data provides the embedded default levels.
package data

import (
	"embed"
	"io/fs"
)

// levelFS embeds all level files from the level directory at build time.
//
//go:embed level/*.lvl
var levelFS embed.FS

// FS returns the embedded filesystem. Level names are paths relative to its
// root, such as "level/000.lvl".
func FS() fs.FS {
	return levelFS
}
