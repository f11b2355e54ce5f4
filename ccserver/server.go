// Package ccserver wraps the converter in a small HTTP service: upload an
// archive, get back the conversion report and a link to the packaged OLX
// tree.
package ccserver

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/kalebabebe/mitx-canvas-tools/config"
)

var Log = config.Cfg().GetLogger()
var CorsHandler = handlers.CORS(handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}), handlers.AllowCredentials(), handlers.AllowedHeaders([]string{"content-type", "access-control-request-headers", "access-control-request-method"}), handlers.AllowedOrigins([]string{"*"}))

func Serve() {
	cfg := config.Cfg()
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			Log.Fatalf("Cannot create working directory %s: %v", dir, err)
		}
	}
	Log.Info("Starting conversion HTTP server")
	err := http.ListenAndServe(fmt.Sprintf("%s:%s", cfg.ServerAddr, cfg.ServerPort), CorsHandler(handlers.CombinedLoggingHandler(os.Stdout, createRouter())))
	Log.Error(err)
	Log.Info("Stopped conversion HTTP server")
}
