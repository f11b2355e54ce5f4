package ccserver

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/exlinc/golang-utils/jsonhttp"
	"github.com/gorilla/mux"
	"github.com/kalebabebe/mitx-canvas-tools/config"
)

func downloadResult(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".tar.gz") {
		jsonhttp.JSONBadRequestError(w, "Invalid download name", "")
		return
	}
	path := filepath.Join(config.Cfg().OutputDir, name)
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	http.ServeFile(w, r, path)
}
