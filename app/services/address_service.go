package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/internal/catalog"
	"github.com/alamat-parser/internal/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency jumlah alamat yang di-parse paralel dalam batch
const DefaultBatchConcurrency = 4

// BatchItem hasil satu alamat dalam batch
type BatchItem struct {
	Address string
	Result  parser.Result
	Err     error
}

// AddressService parse alamat tanpa state dan akses katalog wilayah
type AddressService struct {
	parser    *parser.AddressParser
	catalog   *catalog.Catalog
	logger    *zap.Logger
	startTime time.Time

	totalParsed atomic.Int64
	totalFailed atomic.Int64
}

// NewAddressService membuat AddressService
func NewAddressService(p *parser.AddressParser, c *catalog.Catalog, logger *zap.Logger) *AddressService {
	return &AddressService{
		parser:    p,
		catalog:   c,
		logger:    logger,
		startTime: time.Now(),
	}
}

// ParseAddress parse satu alamat
func (as *AddressService) ParseAddress(ctx context.Context, rawAddress string) (parser.Result, error) {
	if strings.TrimSpace(rawAddress) == "" {
		return parser.Result{}, ErrEmptyAddress
	}

	start := time.Now()
	result, err := as.parser.Parse(ctx, rawAddress)
	if err != nil {
		as.totalFailed.Add(1)
		if !errors.Is(err, parser.ErrAddressTooShort) {
			as.logger.Error("Gagal parse alamat", zap.Error(err))
		}
		return parser.Result{}, err
	}
	as.totalParsed.Add(1)

	as.logger.Debug("Alamat selesai di-parse",
		zap.Duration("duration", time.Since(start)),
		zap.Int("messages", len(result.Messages)))
	return result, nil
}

// ParseBatch parse banyak alamat paralel. Error per alamat disimpan di item,
// bukan menghentikan batch; urutan hasil sama dengan input.
func (as *AddressService) ParseBatch(ctx context.Context, addresses []string, concurrency int) []BatchItem {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	items := make([]BatchItem, len(addresses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			result, err := as.ParseAddress(gctx, address)
			items[i] = BatchItem{Address: address, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return items
}

// ListUnits list wilayah untuk satu level; parentID kosong untuk provinsi
func (as *AddressService) ListUnits(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	units, err := as.catalog.List(ctx, level, parentID)
	if err != nil {
		return nil, err
	}
	if units == nil {
		units = []models.AdministrativeUnit{}
	}
	return units, nil
}

// GetStartTime waktu service dimulai
func (as *AddressService) GetStartTime() time.Time {
	return as.startTime
}

// GetStats statistik ringkas service
func (as *AddressService) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uptime":         time.Since(as.startTime).String(),
		"total_parsed":   as.totalParsed.Load(),
		"total_failed":   as.totalFailed.Load(),
		"catalog_cached": as.catalog.Len(),
	}
}
