package embedui

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed ui/**
var embedFS embed.FS

// RegisterUIHandlers serves the embedded page of app ("viewer" or "admin")
// for every GET request outside /api/.
func RegisterUIHandlers(router *gin.Engine, app string) {
	uiFS, err := fs.Sub(embedFS, "ui/"+app)
	if err != nil {
		panic("embedui: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(uiFS))

	router.Use(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		// Unknown paths fall back to index.html.
		path := strings.TrimPrefix(c.Request.URL.Path, "/")
		if _, err := fs.Stat(uiFS, path); err != nil {
			c.Request.URL.Path = "/"
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	})
}
