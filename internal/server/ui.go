package server

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexPage = "index.html"

// uiFS holds the embedded editor/viewer page. Set via SetUI before
// creating the server.
var uiFS fs.FS

// SetUI sets the embedded filesystem for serving the UI.
func SetUI(fsys fs.FS) {
	uiFS = fsys
}

// handleUI serves the page and its assets. A share link differs only in
// its fragment, which browsers never send, so any path that is not a file
// gets the page, and the page decodes the memory through the API.
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	if s.ui == nil {
		writeError(w, http.StatusNotFound, "ui not embedded in this build")
		return
	}

	name := path.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if !s.isAsset(name) {
		name = indexPage
	}
	if name == indexPage {
		// Page updates must reach holders of old links.
		w.Header().Set("Cache-Control", "no-cache")
	}
	http.ServeFileFS(w, r, s.ui, name)
}

func (s *Server) isAsset(name string) bool {
	if name == "." || !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(s.ui, name)
	return err == nil && !info.IsDir()
}
