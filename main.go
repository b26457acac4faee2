package main

import (
	"log"

	"github.com/alamat-parser/app/config"
	"github.com/alamat-parser/app/controllers"
	"github.com/alamat-parser/app/services"
	"github.com/alamat-parser/helpers/utils"
	"github.com/alamat-parser/internal/catalog"
	"github.com/alamat-parser/internal/parser"
	"github.com/alamat-parser/internal/postal"
	"github.com/alamat-parser/internal/search"
	"github.com/alamat-parser/routes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Load konfigurasi
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Gagal memuat konfigurasi: ", err)
	}

	// 2. Logger
	logger, err := utils.NewLogger(cfg.App.Env)
	if err != nil {
		log.Fatal("Gagal membuat logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting Alamat Parser Service",
		zap.String("env", cfg.App.Env),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("history_backend", cfg.History.Backend))

	// 3. Katalog wilayah
	httpProvider := catalog.NewHTTPProvider(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)

	var provider catalog.Provider = httpProvider
	var indexer services.WilayahIndexer
	wilayahIndex, err := search.NewWilayahIndex(search.SearchConfig{
		Host:      cfg.Meilisearch.URL,
		APIKey:    cfg.Meilisearch.MasterKey,
		IndexName: cfg.Meilisearch.Index,
	}, logger)
	switch {
	case err == nil:
		indexer = wilayahIndex
		if cfg.Catalog.Source == config.SourceMeilisearch {
			provider = wilayahIndex
		}
	case cfg.Catalog.Source == config.SourceMeilisearch:
		logger.Fatal("Meilisearch tidak tersedia", zap.Error(err))
	default:
		logger.Warn("Meilisearch tidak tersedia, seeding dinonaktifkan", zap.Error(err))
	}

	wilayahCatalog, err := catalog.NewCatalog(provider, cfg.Catalog.CacheSize, logger)
	if err != nil {
		logger.Fatal("Gagal membuat katalog", zap.Error(err))
	}

	// 4. Kode pos & parser
	postalResolver := postal.NewResolver(postal.NewClient(cfg.Postal.BaseURL, cfg.Postal.Timeout, logger), logger)
	addressParser := parser.NewAddressParser(wilayahCatalog, postalResolver, cfg.Parser.MinLength, logger)

	// 5. Riwayat
	store, err := services.NewHistoryStore(cfg.History, logger)
	if err != nil {
		logger.Fatal("Gagal membuat history store", zap.Error(err))
	}
	historyService := services.NewHistoryService(store, cfg.History.Prefix, cfg.History.Limit, logger)
	defer historyService.Close()

	// 6. Services
	addressService := services.NewAddressService(addressParser, wilayahCatalog, logger)
	sessionService, err := services.NewSessionService(addressParser, wilayahCatalog, historyService, services.NewExportService(), services.SessionConfig{
		DebounceMinLength: cfg.Parser.DebounceMinLength,
		DebounceQuiet:     cfg.Parser.DebounceQuiet,
		MaxSessions:       cfg.Parser.MaxSessions,
	}, logger)
	if err != nil {
		logger.Fatal("Gagal membuat session service", zap.Error(err))
	}
	defer sessionService.Close()
	adminService := services.NewAdminService(wilayahCatalog, httpProvider, indexer, logger)

	// 7. Controllers & router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, routes.Controllers{
		Address: controllers.NewAddressController(addressService, logger),
		Session: controllers.NewSessionController(sessionService, logger),
		History: controllers.NewHistoryController(historyService, logger),
		Admin:   controllers.NewAdminController(adminService, logger),
	}, logger)

	// 8. Start server
	logger.Info("Alamat Parser Service listening", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("Gagal menjalankan server", zap.Error(err))
	}
}
