package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/internal/catalog"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultSeedConcurrency jumlah fetch paralel saat seeding
const DefaultSeedConcurrency = 8

// WilayahIndexer tujuan seeding katalog wilayah (Meilisearch)
type WilayahIndexer interface {
	BuildIndexes() error
	SeedData(units []models.AdministrativeUnit) error
}

// AdminService fungsi admin: invalidasi cache katalog, seeding index, statistik
type AdminService struct {
	catalog   *catalog.Catalog
	source    catalog.Provider
	indexer   WilayahIndexer
	logger    *zap.Logger
	startTime time.Time
}

// SeedOptions opsi seeding
type SeedOptions struct {
	ProvinceID  string
	Concurrency int
}

// SeedResult hasil seeding
type SeedResult struct {
	UnitsProcessed   int            `json:"units_processed"`
	ListsFetched     int            `json:"lists_fetched"`
	UnitsPerLevel    map[string]int `json:"units_per_level"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
}

// SystemStats statistik sistem
type SystemStats struct {
	Uptime        string                 `json:"uptime"`
	MemoryUsage   map[string]interface{} `json:"memory_usage"`
	CatalogCached int                    `json:"catalog_cached"`
	Goroutines    int                    `json:"goroutines"`
}

// NewAdminService membuat AdminService. source dan indexer boleh nil jika seeding tidak dipakai.
func NewAdminService(c *catalog.Catalog, source catalog.Provider, indexer WilayahIndexer, logger *zap.Logger) *AdminService {
	return &AdminService{
		catalog:   c,
		source:    source,
		indexer:   indexer,
		logger:    logger,
		startTime: time.Now(),
	}
}

// InvalidateCatalog menghapus satu list dari cache katalog; level 0 mengosongkan semuanya
func (as *AdminService) InvalidateCatalog(level models.Level, parentID string) bool {
	if as.catalog == nil {
		return false
	}
	if level == 0 {
		as.catalog.Purge()
		return true
	}
	removed := as.catalog.Invalidate(level, parentID)
	as.logger.Info("Cache katalog di-invalidate",
		zap.String("level", level.String()),
		zap.String("parent_id", parentID),
		zap.Bool("removed", removed))
	return removed
}

// SeedIndex menyalin hierarki wilayah dari provider ke index, level demi level.
// Fetch per parent dalam satu level berjalan paralel dibatasi Concurrency.
func (as *AdminService) SeedIndex(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	if as.source == nil || as.indexer == nil {
		return nil, errors.New("seeding tidak dikonfigurasi: provider atau index kosong")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultSeedConcurrency
	}

	start := time.Now()
	if err := as.indexer.BuildIndexes(); err != nil {
		return nil, err
	}

	provinces, err := as.source.List(ctx, models.LevelProvince, "")
	if err != nil {
		return nil, fmt.Errorf("gagal memuat provinsi: %w", err)
	}
	if err := as.indexer.SeedData(provinces); err != nil {
		return nil, err
	}

	result := &SeedResult{
		UnitsProcessed: len(provinces),
		ListsFetched:   1,
		UnitsPerLevel:  map[string]int{models.LevelProvince.String(): len(provinces)},
	}

	parents := provinces
	if opts.ProvinceID != "" {
		province, ok := models.FindUnit(provinces, opts.ProvinceID)
		if !ok {
			return nil, fmt.Errorf("%w: provinsi %s", ErrUnitNotFound, opts.ProvinceID)
		}
		parents = []models.AdministrativeUnit{province}
	}

	for level := models.LevelRegency; level <= models.LevelVillage; level++ {
		children, err := as.seedLevel(ctx, level, parents, opts.Concurrency)
		if err != nil {
			return nil, err
		}
		result.UnitsProcessed += len(children)
		result.ListsFetched += len(parents)
		result.UnitsPerLevel[level.String()] = len(children)

		as.logger.Info("Level di-seed",
			zap.String("level", level.String()),
			zap.Int("parents", len(parents)),
			zap.Int("units", len(children)))
		parents = children
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

func (as *AdminService) seedLevel(ctx context.Context, level models.Level, parents []models.AdministrativeUnit, concurrency int) ([]models.AdministrativeUnit, error) {
	var (
		mu       sync.Mutex
		children []models.AdministrativeUnit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, parent := range parents {
		parent := parent
		g.Go(func() error {
			units, err := as.source.List(gctx, level, parent.ID)
			if err != nil {
				return fmt.Errorf("gagal memuat %s untuk %s: %w", level, parent.ID, err)
			}
			if err := as.indexer.SeedData(units); err != nil {
				return err
			}

			mu.Lock()
			children = append(children, units...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return children, nil
}

// GetSystemStats statistik sistem
func (as *AdminService) GetSystemStats() *SystemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Uptime: time.Since(as.startTime).Round(time.Second).String(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
		Goroutines: runtime.NumGoroutine(),
	}
	if as.catalog != nil {
		stats.CatalogCached = as.catalog.Len()
	}
	return stats
}

// Helper functions
func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
