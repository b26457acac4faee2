package controllers

import (
	"errors"
	"net/http"

	"github.com/alamat-parser/app/responses"
	"github.com/alamat-parser/app/services"
	"github.com/alamat-parser/internal/catalog"
	"github.com/alamat-parser/internal/parser"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError memetakan error service ke status HTTP
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var fetchErr *catalog.FetchError

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "SESSION_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, services.ErrHistoryNotFound):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "HISTORY_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, services.ErrUnitNotFound):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "UNIT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, services.ErrUnknownField):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "UNKNOWN_FIELD", Message: err.Error()})
	case errors.Is(err, services.ErrEmptyAddress):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "EMPTY_ADDRESS", Message: err.Error()})
	case errors.Is(err, parser.ErrAddressTooShort):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "ADDRESS_TOO_SHORT", Message: err.Error()})
	case errors.Is(err, services.ErrSelectionChanged):
		c.JSON(http.StatusConflict, responses.ErrorResponse{Error: "SELECTION_CHANGED", Message: err.Error()})
	case errors.Is(err, services.ErrNothingToExport):
		c.JSON(http.StatusUnprocessableEntity, responses.ErrorResponse{Error: "NOTHING_TO_EXPORT", Message: err.Error()})
	case errors.As(err, &fetchErr):
		logger.Warn("Katalog wilayah tidak tersedia", zap.Error(err))
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{Error: "CATALOG_UNAVAILABLE", Message: fetchErr.StatusMessage()})
	default:
		logger.Error("Request gagal", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "INTERNAL_ERROR", Message: err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, responses.ErrorResponse{
		Error:   "INVALID_REQUEST",
		Message: "Request tidak valid: " + err.Error(),
	})
}
