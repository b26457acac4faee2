package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/helpers/utils"
	"go.uber.org/zap"
)

// Default riwayat
const (
	DefaultHistoryPrefix = "address:"
	DefaultHistoryLimit  = 10
)

// Pesan hasil simpan
const (
	MessageSaved        = "Data alamat berhasil disimpan!"
	MessageSavedSession = "Data alamat berhasil disimpan (sesi ini)"
)

// HistoryService menyimpan dan membaca riwayat alamat
type HistoryService struct {
	store  IHistoryStore
	prefix string
	limit  int
	logger *zap.Logger

	mu    sync.RWMutex
	local []models.HistoryEntry // entri proses ini, termasuk yang gagal disimpan ke store
	now   func() time.Time
}

// NewHistoryService membuat HistoryService
func NewHistoryService(store IHistoryStore, prefix string, limit int, logger *zap.Logger) *HistoryService {
	if prefix == "" {
		prefix = DefaultHistoryPrefix
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{
		store:  store,
		prefix: prefix,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

// Save menyimpan alamat dan hasil parse. Gagal simpan ke store tidak dianggap error:
// entri tetap ada di riwayat proses ini dan pesannya diperhalus.
func (hs *HistoryService) Save(ctx context.Context, rawAddress string, parsed models.ParsedAddress) (models.HistoryEntry, string, error) {
	if strings.TrimSpace(rawAddress) == "" {
		return models.HistoryEntry{}, "", ErrEmptyAddress
	}

	entry := models.HistoryEntry{
		ID:         utils.GenerateID(),
		CreatedAt:  hs.now().UTC(),
		RawAddress: rawAddress,
		Parsed:     parsed,
	}

	hs.remember(entry)

	data, err := json.Marshal(entry)
	if err != nil {
		return models.HistoryEntry{}, "", fmt.Errorf("gagal marshal riwayat: %w", err)
	}

	if err := hs.store.Set(ctx, hs.key(entry.ID), string(data)); err != nil {
		hs.logger.Warn("Gagal menyimpan riwayat ke store, disimpan untuk sesi ini",
			zap.String("id", entry.ID),
			zap.Error(err))
		return entry, MessageSavedSession, nil
	}

	hs.logger.Info("Riwayat alamat disimpan", zap.String("id", entry.ID))
	return entry, MessageSaved, nil
}

// List riwayat terbaru lebih dulu, maksimal limit entri.
// Store yang gagal dibaca menghasilkan riwayat proses ini saja.
func (hs *HistoryService) List(ctx context.Context) []models.HistoryEntry {
	byID := make(map[string]models.HistoryEntry)

	hs.mu.RLock()
	for _, e := range hs.local {
		byID[e.ID] = e
	}
	hs.mu.RUnlock()

	keys, err := hs.store.List(ctx, hs.prefix)
	if err != nil {
		hs.logger.Warn("Gagal membaca daftar riwayat", zap.Error(err))
	}

	// Id UUIDv7 terurut waktu: key terbesar = terbaru
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > hs.limit {
		keys = keys[:hs.limit]
	}

	for _, key := range keys {
		id := strings.TrimPrefix(key, hs.prefix)
		if _, ok := byID[id]; ok {
			continue
		}
		entry, found, err := hs.load(ctx, key)
		if err != nil {
			hs.logger.Warn("Gagal membaca riwayat", zap.String("key", key), zap.Error(err))
			continue
		}
		if found {
			byID[entry.ID] = entry
		}
	}

	entries := make([]models.HistoryEntry, 0, len(byID))
	for _, e := range byID {
		entries = append(entries, e)
	}
	sortNewestFirst(entries)
	if len(entries) > hs.limit {
		entries = entries[:hs.limit]
	}
	return entries
}

// Get satu entri riwayat
func (hs *HistoryService) Get(ctx context.Context, id string) (models.HistoryEntry, error) {
	hs.mu.RLock()
	for _, e := range hs.local {
		if e.ID == id {
			hs.mu.RUnlock()
			return e, nil
		}
	}
	hs.mu.RUnlock()

	entry, found, err := hs.load(ctx, hs.key(id))
	if err != nil {
		return models.HistoryEntry{}, err
	}
	if !found {
		return models.HistoryEntry{}, ErrHistoryNotFound
	}
	return entry, nil
}

func (hs *HistoryService) load(ctx context.Context, key string) (models.HistoryEntry, bool, error) {
	value, found, err := hs.store.Get(ctx, key)
	if err != nil || !found {
		return models.HistoryEntry{}, false, err
	}

	var entry models.HistoryEntry
	if err := json.Unmarshal([]byte(value), &entry); err != nil {
		return models.HistoryEntry{}, false, fmt.Errorf("riwayat %s rusak: %w", key, err)
	}
	return entry, true, nil
}

func (hs *HistoryService) remember(entry models.HistoryEntry) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.local = append([]models.HistoryEntry{entry}, hs.local...)
	if len(hs.local) > hs.limit {
		hs.local = hs.local[:hs.limit]
	}
}

func (hs *HistoryService) key(id string) string {
	return hs.prefix + id
}

// Close menutup store
func (hs *HistoryService) Close() error {
	return hs.store.Close()
}

func sortNewestFirst(entries []models.HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
