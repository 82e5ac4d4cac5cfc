// Package assets bundles the component templates copied by `dev add`.
//
// Templates live at components/<framework>/<component>/<theme>/<component>.<type>.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed components
var files embed.FS

// FS returns the bundled template tree rooted above the components directory.
func FS() fs.FS {
	return files
}
