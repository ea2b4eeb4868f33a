// Package web embeds the static site shell the relay serves at the root
// path. The shell is a placeholder; page rendering lives outside this
// repository.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Static returns the embedded site rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The subtree is embedded at compile time; failure here is a build defect.
		panic(err)
	}
	return sub
}
