package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alamat-parser/app/models"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// maxUnitsPerParent batas hasil satu list. Kecamatan/desa per parent jauh di bawah ini.
const maxUnitsPerParent = 1000

// WilayahIndex index katalog wilayah di Meilisearch
type WilayahIndex struct {
	client    *ClientWrapper
	raw       meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
}

// SearchConfig konfigurasi koneksi Meilisearch
type SearchConfig struct {
	Host      string
	APIKey    string
	IndexName string
}

// WilayahDocument dokumen yang disimpan di index
type WilayahDocument struct {
	ID       string `json:"id"`
	UnitID   string `json:"unit_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	ParentID string `json:"parent_id"`
	Ordinal  int    `json:"ordinal"`
}

// NewWilayahIndex membuat WilayahIndex dan mengecek koneksi
func NewWilayahIndex(config SearchConfig, logger *zap.Logger) (*WilayahIndex, error) {
	if config.IndexName == "" {
		return nil, errors.New("nama index meilisearch kosong")
	}

	wrapper := NewClientWrapper(config.Host, config.APIKey)
	if err := wrapper.Healthy(); err != nil {
		return nil, err
	}

	return &WilayahIndex{
		client:    wrapper,
		raw:       wrapper.cli,
		logger:    logger,
		indexName: config.IndexName,
	}, nil
}

// List mengambil list wilayah satu level yang di-scope parentID, urut sesuai katalog
func (wi *WilayahIndex) List(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter := FilterLevelParent(int(level), parentID)
	result, err := wi.client.ListIndex(wi.indexName, filter, []string{"ordinal:asc"}, maxUnitsPerParent)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari %s di meilisearch: %w", level, err)
	}

	docs, err := decodeHits(result)
	if err != nil {
		return nil, err
	}

	units := make([]models.AdministrativeUnit, 0, len(docs))
	for _, doc := range docs {
		units = append(units, doc.toUnit())
	}
	return units, nil
}

// decodeHits parse hit Meilisearch lewat JSON supaya tidak bergantung pada bentuk tipe Hits
func decodeHits(result *meilisearch.SearchResponse) ([]WilayahDocument, error) {
	raw, err := json.Marshal(result.Hits)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca hasil meilisearch: %w", err)
	}

	var docs []WilayahDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("gagal parse hasil meilisearch: %w", err)
	}
	return docs, nil
}

func (d WilayahDocument) toUnit() models.AdministrativeUnit {
	return models.AdministrativeUnit{
		ID:       d.UnitID,
		Name:     d.Name,
		ParentID: d.ParentID,
		Level:    models.Level(d.Level),
	}
}

// NewWilayahDocuments konversi list wilayah jadi dokumen index; ordinal = posisi di list
func NewWilayahDocuments(units []models.AdministrativeUnit) []WilayahDocument {
	docs := make([]WilayahDocument, 0, len(units))
	for i, unit := range units {
		docs = append(docs, WilayahDocument{
			ID:       DocumentID(int(unit.Level), unit.ID),
			UnitID:   unit.ID,
			Name:     unit.Name,
			Level:    int(unit.Level),
			ParentID: unit.ParentID,
			Ordinal:  i,
		})
	}
	return docs
}

// BuildIndexes konfigurasi index: atribut filter dan sort yang dipakai List
func (wi *WilayahIndex) BuildIndexes() error {
	index := wi.raw.Index(wi.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"name"},
		FilterableAttributes: []string{"level", "parent_id", "unit_id"},
		SortableAttributes:   []string{"ordinal", "level"},
		RankingRules:         []string{"sort", "words", "typo", "proximity", "attribute", "exactness"},
	})
	if err != nil {
		return fmt.Errorf("gagal konfigurasi index: %w", err)
	}

	wi.logger.Info("Index Meilisearch dikonfigurasi",
		zap.String("index", wi.indexName),
		zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedData memasukkan satu list wilayah (satu parent) ke index
func (wi *WilayahIndex) SeedData(units []models.AdministrativeUnit) error {
	if len(units) == 0 {
		return nil
	}

	index := wi.raw.Index(wi.indexName)
	documents := NewWilayahDocuments(units)

	// Batch insert (chunks of 1000)
	batchSize := 1000
	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}

		batch := documents[i:end]
		task, err := index.AddDocuments(batch, "id")
		if err != nil {
			return fmt.Errorf("gagal menambah dokumen batch %d-%d: %w", i, end, err)
		}

		wi.logger.Debug("Batch dokumen ditambahkan",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}
	return nil
}
