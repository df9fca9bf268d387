package api

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
)

//go:embed static/*
var assets embed.FS

//go:embed templates/*.html
var templates embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// StaticHandlerFS serves page assets from fsys. Unknown paths are 404s; the
// page is rendered server-side, so there is no index fallback.
func StaticHandlerFS(fsys fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if len(name) > 0 && name[0] == '/' {
			name = name[1:]
		}
		if _, err := fs.Stat(fsys, name); errors.Is(err, fs.ErrNotExist) || name == "" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		fileServer.ServeHTTP(w, r)
	})
}
