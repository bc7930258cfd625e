// Package site serves the embedded landing page with links to the API.
package site

import (
	"context"
	"net/http"
)

// Register attaches the landing page to mux. It handles / only, so unknown
// paths still answer 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	files := http.FileServer(FS())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
