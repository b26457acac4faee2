package routes

import (
	"github.com/alamat-parser/app/controllers"
	"github.com/gin-gonic/gin"
)

// Controllers kumpulan controller yang dipasang ke router
type Controllers struct {
	Address *controllers.AddressController
	Session *controllers.SessionController
	History *controllers.HistoryController
	Admin   *controllers.AdminController
}

// SetupAPIRoutes memasang semua API routes
func SetupAPIRoutes(router *gin.Engine, ctrl Controllers) {
	v1 := router.Group("/v1")
	{
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/parse", ctrl.Address.ParseAddress)
			addresses.POST("/parse/batch", ctrl.Address.BatchParse)
		}

		wilayah := v1.Group("/wilayah")
		{
			wilayah.GET("/provinces", ctrl.Address.ListProvinces)
			wilayah.GET("/regencies/:provinceID", ctrl.Address.ListRegencies)
			wilayah.GET("/districts/:regencyID", ctrl.Address.ListDistricts)
			wilayah.GET("/villages/:districtID", ctrl.Address.ListVillages)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", ctrl.Session.Create)
			sessions.GET("/:id", ctrl.Session.Get)
			sessions.PUT("/:id/input", ctrl.Session.UpdateInput)
			sessions.POST("/:id/parse", ctrl.Session.Parse)
			sessions.POST("/:id/override", ctrl.Session.Override)
			sessions.POST("/:id/fields", ctrl.Session.SetField)
			sessions.POST("/:id/clear", ctrl.Session.Clear)
			sessions.POST("/:id/save", ctrl.Session.Save)
			sessions.POST("/:id/history/:entryID", ctrl.Session.LoadHistory)
			sessions.GET("/:id/export", ctrl.Session.Export)
		}

		history := v1.Group("/history")
		{
			history.GET("", ctrl.History.List)
			history.GET("/:id", ctrl.History.Get)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/catalog/invalidate", ctrl.Admin.InvalidateCatalog)
			admin.POST("/seed", ctrl.Admin.SeedIndex)
			admin.GET("/stats", ctrl.Admin.GetStats)
		}

		v1.GET("/health", ctrl.Address.HealthCheck)
	}
}

// SetupHealthRoutes health check routes
func SetupHealthRoutes(router *gin.Engine, addressController *controllers.AddressController) {
	router.GET("/health", addressController.HealthCheck)
	router.GET("/ready", addressController.HealthCheck)
	router.GET("/live", addressController.HealthCheck)
}
