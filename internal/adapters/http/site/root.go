// Package site handles the embedded documentation site.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("docs site serve failed")
)

// Register attaches the embedded documentation site routes to mux.
// Registering only the /docs/ subtree keeps the root free, so unknown
// paths still fall through to a plain 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded documentation site under /docs/
	files := http.StripPrefix("/docs/", http.FileServer(FS()))
	mux.Handle("/docs/", files)
}
