package rest

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/adityakarchi/recipe-management/internal/config"
)

// SPAHandler serves the browser client. Existing files are served as is;
// any other path gets the index page so client-side routes survive a reload.
type SPAHandler struct {
	fsys  fs.FS
	index string
}

// NewSPAHandler serves files from cfg.Dir.
func NewSPAHandler(cfg config.StaticConfig) *SPAHandler {
	return &SPAHandler{fsys: os.DirFS(cfg.Dir), index: cfg.Index}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" {
		if info, err := fs.Stat(h.fsys, name); err == nil && !info.IsDir() {
			http.ServeFileFS(w, r, h.fsys, name)
			return
		}
	}

	if _, err := fs.Stat(h.fsys, h.index); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	http.ServeFileFS(w, r, h.fsys, h.index)
}

// APINotFound answers unmatched /api paths.
func APINotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}
