package api

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const entryDocument = "index.html"

// SPAHandler serves files from assets and answers every other GET with the
// entry document so client-side routes resolve.
func SPAHandler(assets fs.FS) http.Handler {
	files := http.FileServerFS(assets)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" && isFile(assets, name) {
			files.ServeHTTP(w, r)
			return
		}
		if name != "" && isFile(assets, path.Join(name, entryDocument)) {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFileFS(w, r, assets, entryDocument)
	})
}

func isFile(assets fs.FS, name string) bool {
	info, err := fs.Stat(assets, name)
	return err == nil && !info.IsDir()
}

// ClientConfigHandler serves the browser runtime settings as a script that
// runs before the app bundle.
func ClientConfigHandler(adminCode string) http.Handler {
	code, _ := json.Marshal(adminCode)
	body := []byte("window.ADMIN_CODE = " + string(code) + ";\n")
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(body)
	})
}
