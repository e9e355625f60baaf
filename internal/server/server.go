// Package server exposes the analysis flow over HTTP: one embedded page
// with the URL input, and a small JSON API it talks to.
package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexPage []byte

// NewRouter wires the gin engine: request logging, panic recovery as the
// final safety net, permissive CORS, the report page, and the API routes.
func NewRouter(handler *AnalysisHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		v1.POST("/analyze", handler.Analyze)
	}

	return router
}
