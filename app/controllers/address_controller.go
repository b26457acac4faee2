package controllers

import (
	"net/http"
	"time"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/app/requests"
	"github.com/alamat-parser/app/responses"
	"github.com/alamat-parser/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddressController controller parse alamat dan katalog wilayah
type AddressController struct {
	addressService *services.AddressService
	logger         *zap.Logger
}

// NewAddressController membuat AddressController
func NewAddressController(addressService *services.AddressService, logger *zap.Logger) *AddressController {
	return &AddressController{
		addressService: addressService,
		logger:         logger,
	}
}

// ParseAddress parse satu alamat tanpa session
func (ac *AddressController) ParseAddress(c *gin.Context) {
	var req requests.ParseAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	startTime := time.Now()
	result, err := ac.addressService.ParseAddress(c.Request.Context(), req.Address)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.ParseAddressResponse{
		Address:          req.Address,
		Parsed:           responses.NewParsedAddressResponse(result.Address),
		Messages:         result.Messages,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// BatchParse parse banyak alamat sekaligus
func (ac *AddressController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	startTime := time.Now()
	items := ac.addressService.ParseBatch(c.Request.Context(), req.Addresses, 0)

	resp := responses.BatchParseResponse{
		Results: make([]responses.BatchItemResponse, 0, len(items)),
		Total:   len(items),
	}
	for _, item := range items {
		out := responses.BatchItemResponse{Address: item.Address}
		if item.Err != nil {
			out.Error = item.Err.Error()
			resp.Failed++
		} else {
			parsed := responses.NewParsedAddressResponse(item.Result.Address)
			out.Parsed = &parsed
			out.Messages = item.Result.Messages
		}
		resp.Results = append(resp.Results, out)
	}
	resp.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	c.JSON(http.StatusOK, resp)
}

// ListProvinces daftar provinsi
func (ac *AddressController) ListProvinces(c *gin.Context) {
	ac.listUnits(c, models.LevelProvince, "")
}

// ListRegencies daftar kabupaten/kota dalam provinsi
func (ac *AddressController) ListRegencies(c *gin.Context) {
	ac.listUnits(c, models.LevelRegency, c.Param("provinceID"))
}

// ListDistricts daftar kecamatan dalam kabupaten/kota
func (ac *AddressController) ListDistricts(c *gin.Context) {
	ac.listUnits(c, models.LevelDistrict, c.Param("regencyID"))
}

// ListVillages daftar kelurahan/desa dalam kecamatan
func (ac *AddressController) ListVillages(c *gin.Context) {
	ac.listUnits(c, models.LevelVillage, c.Param("districtID"))
}

func (ac *AddressController) listUnits(c *gin.Context, level models.Level, parentID string) {
	units, err := ac.addressService.ListUnits(c.Request.Context(), level, parentID)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.UnitListResponse{
		Level:    level.String(),
		ParentID: parentID,
		Units:    units,
	})
}

// HealthCheck status service
func (ac *AddressController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC(),
		"started_at": ac.addressService.GetStartTime().UTC(),
		"stats":      ac.addressService.GetStats(),
	})
}
