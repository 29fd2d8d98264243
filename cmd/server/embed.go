//go:build embed
// +build embed

package main

import (
	"embed"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"estate/internal/model"
)

//go:embed web/dist
var webDist embed.FS

// setupStaticFiles serves the frontend bundled into the binary
func setupStaticFiles(router *gin.Engine, log zerolog.Logger) {
	log.Info().Msg("using embedded frontend assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get dist subdirectory")
	}

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/api") {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "API endpoint not found"})
			return
		}

		cleanPath := strings.TrimPrefix(path.Clean(urlPath), "/")
		if cleanPath == "" {
			cleanPath = "index.html"
		}

		if content, ok := readFile(distFS, cleanPath); ok {
			contentType := mime.TypeByExtension(path.Ext(cleanPath))
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			c.Data(http.StatusOK, contentType, content)
			return
		}

		// Unknown paths are client-side routes
		content, ok := readFile(distFS, "index.html")
		if !ok {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	})
}

func readFile(fsys fs.FS, name string) ([]byte, bool) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, false
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		return nil, false
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, false
	}
	return content, true
}
