package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/app/requests"
	"github.com/alamat-parser/app/responses"
	"github.com/alamat-parser/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionController controller form alamat ber-session
type SessionController struct {
	sessionService *services.SessionService
	logger         *zap.Logger
}

// NewSessionController membuat SessionController
func NewSessionController(sessionService *services.SessionService, logger *zap.Logger) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Create membuat session baru
func (sc *SessionController) Create(c *gin.Context) {
	view := sc.sessionService.Create()
	c.JSON(http.StatusCreated, responses.NewSessionResponse(view))
}

// Get snapshot session
func (sc *SessionController) Get(c *gin.Context) {
	view, err := sc.sessionService.Get(c.Param("id"))
	sc.reply(c, view, err)
}

// UpdateInput menyimpan input; parse berjalan setelah input diam
func (sc *SessionController) UpdateInput(c *gin.Context) {
	var req requests.UpdateInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := sc.sessionService.UpdateInput(c.Param("id"), req.Address)
	if err != nil {
		respondError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, responses.NewSessionResponse(view))
}

// Parse parse input session sekarang
func (sc *SessionController) Parse(c *gin.Context) {
	view, err := sc.sessionService.ParseNow(c.Request.Context(), c.Param("id"))
	sc.reply(c, view, err)
}

// Override pilih wilayah manual
func (sc *SessionController) Override(c *gin.Context) {
	var req requests.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	level, ok := models.ParseLevel(req.Level)
	if !ok {
		badRequest(c, fmt.Errorf("level tidak dikenal: %q", req.Level))
		return
	}

	view, err := sc.sessionService.Override(c.Request.Context(), c.Param("id"), level, req.ID)
	sc.reply(c, view, err)
}

// SetField isi manual field teks
func (sc *SessionController) SetField(c *gin.Context) {
	var req requests.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := sc.sessionService.SetField(c.Param("id"), req.Field, req.Value)
	sc.reply(c, view, err)
}

// Clear mengosongkan session
func (sc *SessionController) Clear(c *gin.Context) {
	view, err := sc.sessionService.Clear(c.Param("id"))
	sc.reply(c, view, err)
}

// Save simpan ke riwayat
func (sc *SessionController) Save(c *gin.Context) {
	entry, message, err := sc.sessionService.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, responses.SaveResponse{Entry: entry, Message: message})
}

// LoadHistory memuat entri riwayat ke session
func (sc *SessionController) LoadHistory(c *gin.Context) {
	view, err := sc.sessionService.LoadFromHistory(c.Request.Context(), c.Param("id"), c.Param("entryID"))
	sc.reply(c, view, err)
}

// Export unduh CSV hasil parse
func (sc *SessionController) Export(c *gin.Context) {
	file, err := sc.sessionService.Export(c.Param("id"))
	if err != nil {
		respondError(c, sc.logger, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (sc *SessionController) reply(c *gin.Context, view services.SessionView, err error) {
	if err != nil {
		respondError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewSessionResponse(view))
}
