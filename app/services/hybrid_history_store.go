package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
)

// HybridHistoryStore Redis (L1) + MongoDB (L2). Tulis ke keduanya, baca Redis dulu.
type HybridHistoryStore struct {
	redisStore IHistoryStore
	mongoStore IHistoryStore
	logger     *zap.Logger
}

// NewHybridHistoryStore membuat HybridHistoryStore. redisStore cache best effort,
// mongoStore store utama.
func NewHybridHistoryStore(redisStore, mongoStore IHistoryStore, logger *zap.Logger) *HybridHistoryStore {
	return &HybridHistoryStore{
		redisStore: redisStore,
		mongoStore: mongoStore,
		logger:     logger,
	}
}

// List gabungan key dari kedua store
func (hs *HybridHistoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	mongoKeys, mongoErr := hs.mongoStore.List(ctx, prefix)
	redisKeys, redisErr := hs.redisStore.List(ctx, prefix)
	if mongoErr != nil && redisErr != nil {
		return nil, errors.Join(mongoErr, redisErr)
	}
	if redisErr != nil {
		hs.logger.Warn("Gagal list Redis, pakai MongoDB", zap.Error(redisErr))
	}
	if mongoErr != nil {
		hs.logger.Warn("Gagal list MongoDB, pakai Redis", zap.Error(mongoErr))
	}

	seen := make(map[string]struct{}, len(mongoKeys)+len(redisKeys))
	keys := make([]string, 0, len(mongoKeys)+len(redisKeys))
	for _, key := range append(mongoKeys, redisKeys...) {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Get dari Redis, fallback MongoDB lalu sync balik ke Redis
func (hs *HybridHistoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, found, err := hs.redisStore.Get(ctx, key)
	if err != nil {
		hs.logger.Warn("Gagal baca Redis, fallback MongoDB", zap.Error(err))
	} else if found {
		return value, true, nil
	}

	value, found, err = hs.mongoStore.Get(ctx, key)
	if err != nil || !found {
		return "", false, err
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hs.redisStore.Set(bgCtx, key, value); err != nil {
			hs.logger.Warn("Gagal sync MongoDB->Redis", zap.Error(err), zap.String("key", key))
		}
	}()

	return value, true, nil
}

// Set ke MongoDB (wajib) lalu Redis (best effort)
func (hs *HybridHistoryStore) Set(ctx context.Context, key, value string) error {
	if err := hs.mongoStore.Set(ctx, key, value); err != nil {
		return err
	}
	if err := hs.redisStore.Set(ctx, key, value); err != nil {
		hs.logger.Warn("Gagal set Redis", zap.Error(err), zap.String("key", key))
	}
	return nil
}

// Close menutup kedua koneksi
func (hs *HybridHistoryStore) Close() error {
	return errors.Join(hs.redisStore.Close(), hs.mongoStore.Close())
}
