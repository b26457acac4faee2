package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/alamat-parser/app/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize jumlah list (per level+parent) yang disimpan di memori
const DefaultCacheSize = 2048

// Catalog katalog wilayah dengan cache per (level, parentID).
// Fetch paralel untuk key yang sama digabung jadi satu request ke provider.
type Catalog struct {
	provider Provider
	cache    *lru.Cache[string, []models.AdministrativeUnit]
	group    singleflight.Group
	logger   *zap.Logger
}

// NewCatalog membuat Catalog di atas provider
func NewCatalog(provider Provider, cacheSize int, logger *zap.Logger) (*Catalog, error) {
	if provider == nil {
		return nil, errors.New("catalog provider nil")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, []models.AdministrativeUnit](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat cache katalog: %w", err)
	}

	return &Catalog{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}, nil
}

// Provinces list semua provinsi
func (c *Catalog) Provinces(ctx context.Context) ([]models.AdministrativeUnit, error) {
	return c.List(ctx, models.LevelProvince, "")
}

// Regencies list kabupaten/kota dalam satu provinsi
func (c *Catalog) Regencies(ctx context.Context, provinceID string) ([]models.AdministrativeUnit, error) {
	return c.List(ctx, models.LevelRegency, provinceID)
}

// Districts list kecamatan dalam satu kabupaten/kota
func (c *Catalog) Districts(ctx context.Context, regencyID string) ([]models.AdministrativeUnit, error) {
	return c.List(ctx, models.LevelDistrict, regencyID)
}

// Villages list kelurahan/desa dalam satu kecamatan
func (c *Catalog) Villages(ctx context.Context, districtID string) ([]models.AdministrativeUnit, error) {
	return c.List(ctx, models.LevelVillage, districtID)
}

// List list wilayah satu level. Level di bawah provinsi tanpa parentID menghasilkan list kosong.
func (c *Catalog) List(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	if !level.IsValid() {
		return nil, fmt.Errorf("level tidak dikenal: %d", level)
	}
	if level != models.LevelProvince && parentID == "" {
		return nil, nil
	}

	key := cacheKey(level, parentID)
	if units, ok := c.cache.Get(key); ok {
		return units, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// fetch dipakai bersama semua caller dengan key yang sama, jadi tidak ikut
	// batal bersama caller pertama; timeout provider tetap berlaku
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		units, err := c.provider.List(fetchCtx, level, parentID)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, units)
		return units, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if res.Err != nil {
		c.logger.Warn("Gagal memuat katalog wilayah",
			zap.String("level", level.String()),
			zap.String("parent_id", parentID),
			zap.Bool("shared", res.Shared),
			zap.Error(res.Err))
		return nil, &FetchError{Level: level, ParentID: parentID, Err: res.Err}
	}

	return res.Val.([]models.AdministrativeUnit), nil
}

// Find mencari satu wilayah berdasarkan id di list (level, parentID)
func (c *Catalog) Find(ctx context.Context, level models.Level, parentID, id string) (models.AdministrativeUnit, bool, error) {
	units, err := c.List(ctx, level, parentID)
	if err != nil {
		return models.AdministrativeUnit{}, false, err
	}
	unit, ok := models.FindUnit(units, id)
	return unit, ok, nil
}

// Invalidate menghapus satu list dari cache
func (c *Catalog) Invalidate(level models.Level, parentID string) bool {
	return c.cache.Remove(cacheKey(level, parentID))
}

// Purge mengosongkan seluruh cache
func (c *Catalog) Purge() {
	c.cache.Purge()
	c.logger.Info("Cache katalog wilayah dikosongkan")
}

// Len jumlah list di cache
func (c *Catalog) Len() int {
	return c.cache.Len()
}

func cacheKey(level models.Level, parentID string) string {
	return fmt.Sprintf("%s:%s", level, parentID)
}
