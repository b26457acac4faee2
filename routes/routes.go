// Package routes memasang routing HTTP untuk service parser alamat.
//
// Struktur:
//   - api.go: API routes (/v1/*)
//   - web.go: halaman index (/, /docs)
//   - routes.go: SetupAllRoutes dan middleware
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupAllRoutes memasang middleware dan semua routes
func SetupAllRoutes(router *gin.Engine, ctrl Controllers, logger *zap.Logger) {
	setupMiddleware(router, logger)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, ctrl.Address)
	SetupAPIRoutes(router, ctrl)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
}

// requestLogger log satu baris per request via zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
