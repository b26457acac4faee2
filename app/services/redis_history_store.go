package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisHistoryStore history store di Redis
type RedisHistoryStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisHistoryStore membuat RedisHistoryStore dan mengecek koneksi
func NewRedisHistoryStore(redisURL string, logger *zap.Logger) (*RedisHistoryStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("gagal parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("tidak dapat terhubung ke Redis: %w", err)
	}

	return NewRedisHistoryStoreWithClient(client, logger), nil
}

// NewRedisHistoryStoreWithClient membungkus client yang sudah ada
func NewRedisHistoryStoreWithClient(client *redis.Client, logger *zap.Logger) *RedisHistoryStore {
	return &RedisHistoryStore{
		client: client,
		logger: logger,
	}
}

// List key dengan prefix via SCAN
func (rs *RedisHistoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := rs.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("gagal scan keys Redis: %w", err)
	}
	return keys, nil
}

// Get value key
func (rs *RedisHistoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := rs.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		rs.logger.Error("Gagal get dari Redis", zap.Error(err), zap.String("key", key))
		return "", false, err
	}
	return val, true, nil
}

// Set menyimpan value tanpa TTL
func (rs *RedisHistoryStore) Set(ctx context.Context, key, value string) error {
	if err := rs.client.Set(ctx, key, value, 0).Err(); err != nil {
		rs.logger.Error("Gagal set ke Redis", zap.Error(err), zap.String("key", key))
		return err
	}
	rs.logger.Debug("Disimpan ke Redis", zap.String("key", key))
	return nil
}

// Close menutup koneksi Redis
func (rs *RedisHistoryStore) Close() error {
	return rs.client.Close()
}
