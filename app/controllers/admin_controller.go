package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/app/requests"
	"github.com/alamat-parser/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController controller request admin
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController membuat AdminController
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// InvalidateCatalog hapus cache katalog; body kosong = semua
func (ac *AdminController) InvalidateCatalog(c *gin.Context) {
	var req requests.InvalidateCatalogRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	var level models.Level
	if strings.TrimSpace(req.Level) != "" {
		parsed, ok := models.ParseLevel(req.Level)
		if !ok {
			badRequest(c, fmt.Errorf("level tidak dikenal: %q", req.Level))
			return
		}
		level = parsed
	}

	removed := ac.adminService.InvalidateCatalog(level, req.ParentID)
	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
		"message": "Cache katalog di-invalidate",
	})
}

// SeedIndex seeding index Meilisearch dari provider HTTP
func (ac *AdminController) SeedIndex(c *gin.Context) {
	var req requests.SeedIndexRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	result, err := ac.adminService.SeedIndex(c.Request.Context(), services.SeedOptions{
		ProvinceID:  req.ProvinceID,
		Concurrency: req.Concurrency,
	})
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStats statistik sistem
func (ac *AdminController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, ac.adminService.GetSystemStats())
}
