package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupWebRoutes halaman index dan daftar endpoint
func SetupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Alamat Parser Service",
			"version": "1.0.0",
			"docs":    "/docs",
		})
	})

	router.GET("/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"api": "Alamat Parser API v1",
			"endpoints": map[string]string{
				"parse":          "POST /v1/addresses/parse",
				"batch":          "POST /v1/addresses/parse/batch",
				"provinces":      "GET /v1/wilayah/provinces",
				"regencies":      "GET /v1/wilayah/regencies/:provinceID",
				"districts":      "GET /v1/wilayah/districts/:regencyID",
				"villages":       "GET /v1/wilayah/villages/:districtID",
				"session_create": "POST /v1/sessions",
				"session_input":  "PUT /v1/sessions/:id/input",
				"session_export": "GET /v1/sessions/:id/export",
				"history":        "GET /v1/history",
				"health":         "GET /health",
			},
		})
	})
}
