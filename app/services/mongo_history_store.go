package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DefaultHistoryCollection nama collection riwayat
const DefaultHistoryCollection = "address_history"

// historyDocument satu key-value di MongoDB
type historyDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoHistoryStore history store persistent di MongoDB
type MongoHistoryStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// ConnectMongo membuka koneksi MongoDB dan ping
func ConnectMongo(ctx context.Context, mongoURL string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("gagal terhubung ke MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("gagal ping MongoDB: %w", err)
	}
	return client, nil
}

// NewMongoHistoryStore membuat MongoHistoryStore pada database/collection
func NewMongoHistoryStore(client *mongo.Client, database, collection string, logger *zap.Logger) *MongoHistoryStore {
	if collection == "" {
		collection = DefaultHistoryCollection
	}
	coll := client.Database(database).Collection(collection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{bson.E{Key: "updated_at", Value: -1}},
	})
	if err != nil {
		logger.Warn("Tidak dapat membuat index address_history", zap.Error(err))
	}

	return &MongoHistoryStore{
		client:     client,
		collection: coll,
		logger:     logger,
	}
}

// List key dengan prefix
func (ms *MongoHistoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	filter := bson.M{"_id": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)}}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := ms.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal query key MongoDB: %w", err)
	}
	defer cursor.Close(ctx)

	var keys []string
	for cursor.Next(ctx) {
		var doc historyDocument
		if err := cursor.Decode(&doc); err != nil {
			ms.logger.Warn("Gagal decode dokumen riwayat", zap.Error(err))
			continue
		}
		keys = append(keys, doc.Key)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("gagal membaca cursor MongoDB: %w", err)
	}
	return keys, nil
}

// Get value key
func (ms *MongoHistoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc historyDocument
	err := ms.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("gagal query MongoDB: %w", err)
	}
	return doc.Value, true, nil
}

// Set upsert value
func (ms *MongoHistoryStore) Set(ctx context.Context, key, value string) error {
	doc := historyDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)

	if _, err := ms.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("gagal menyimpan ke MongoDB: %w", err)
	}
	ms.logger.Debug("Disimpan ke MongoDB", zap.String("key", key))
	return nil
}

// Close memutus koneksi MongoDB
func (ms *MongoHistoryStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ms.client.Disconnect(ctx)
}
