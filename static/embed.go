// Package staticfiles embeds the web assets served under /static/.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var assets embed.FS

// EmbeddedFS returns the bundled assets, rooted at this directory.
func EmbeddedFS() fs.FS {
	return assets
}
