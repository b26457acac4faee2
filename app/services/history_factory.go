package services

import (
	"context"
	"time"

	"github.com/alamat-parser/app/config"
	"go.uber.org/zap"
)

// NewHistoryStore membuat store riwayat sesuai history.backend
func NewHistoryStore(cfg config.HistoryCfg, logger *zap.Logger) (IHistoryStore, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return NewRedisHistoryStore(cfg.RedisURL, logger)
	case config.BackendMongo:
		return connectMongoStore(cfg, logger)
	case config.BackendHybrid:
		mongoStore, err := connectMongoStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		redisStore, err := NewRedisHistoryStore(cfg.RedisURL, logger)
		if err != nil {
			_ = mongoStore.Close()
			return nil, err
		}
		return NewHybridHistoryStore(redisStore, mongoStore, logger), nil
	default:
		return NewMemoryHistoryStore(), nil
	}
}

func connectMongoStore(cfg config.HistoryCfg, logger *zap.Logger) (*MongoHistoryStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, cfg.MongoURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Terhubung ke MongoDB",
		zap.String("database", cfg.MongoDatabase),
		zap.String("collection", cfg.MongoCollection))
	return NewMongoHistoryStore(client, cfg.MongoDatabase, cfg.MongoCollection, logger), nil
}
