package controllers

import (
	"net/http"

	"github.com/alamat-parser/app/responses"
	"github.com/alamat-parser/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HistoryController controller riwayat alamat
type HistoryController struct {
	historyService *services.HistoryService
	logger         *zap.Logger
}

// NewHistoryController membuat HistoryController
func NewHistoryController(historyService *services.HistoryService, logger *zap.Logger) *HistoryController {
	return &HistoryController{
		historyService: historyService,
		logger:         logger,
	}
}

// List riwayat terbaru
func (hc *HistoryController) List(c *gin.Context) {
	entries := hc.historyService.List(c.Request.Context())
	c.JSON(http.StatusOK, responses.HistoryListResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Get satu entri riwayat
func (hc *HistoryController) Get(c *gin.Context) {
	entry, err := hc.historyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, hc.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
