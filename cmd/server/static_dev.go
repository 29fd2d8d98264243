//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"estate/internal/model"
)

// setupStaticFiles serves the site from ./web/dist on disk during development
func setupStaticFiles(router *gin.Engine, log zerolog.Logger) {
	log.Info().Str("dir", "./web/dist").Msg("using local filesystem for frontend assets")

	router.Static("/assets", "./web/dist/assets")
	router.StaticFile("/favicon.ico", "./web/dist/favicon.ico")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "API endpoint not found"})
			return
		}
		// client-side routes all render the SPA shell
		c.File("./web/dist/index.html")
	})
}
