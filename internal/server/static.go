// AngelaMos | 2026
// static.go

package server

import (
	"net/http"
	"path"
	"path/filepath"
)

// StaticHandler serves the built frontend from dir. Paths that do not name
// a file fall back to index.html so client-side routes resolve. An empty
// dir serves 404 for everything.
func StaticHandler(dir string) http.Handler {
	if dir == "" {
		return http.NotFoundHandler()
	}

	root := http.Dir(dir)
	files := http.FileServer(root)
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isFile(root, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}

func isFile(root http.FileSystem, name string) bool {
	f, err := root.Open(path.Clean("/" + name))
	if err != nil {
		return false
	}
	defer f.Close() //nolint:errcheck // read-only handle

	stat, err := f.Stat()
	return err == nil && !stat.IsDir()
}
