package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/observability"
)

const indexFile = "index.html"

// SPAHandler serves files under dir and falls back to dir/index.html for every
// other GET, so client-side routes resolve. Without an index it answers 404.
type SPAHandler struct {
	dir    string
	logger *zap.Logger
}

// NewSPAHandler returns a handler rooted at dir.
func NewSPAHandler(dir string, logger *zap.Logger) *SPAHandler {
	return &SPAHandler{dir: dir, logger: logger}
}

func (s *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := filepath.Join(s.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	if s.serveFile(w, r, name) {
		return
	}

	index := filepath.Join(s.dir, indexFile)
	observability.LoggerFromContext(r.Context(), s.logger).Debug("serving index", zap.String("path", r.URL.Path), zap.String("file", index))
	if s.serveFile(w, r, index) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Index file not found"))
}

// serveFile writes name if it is a regular file and reports whether it did.
func (s *SPAHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
