package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidmnz/textclassify/internal/domain/service"
	"github.com/davidmnz/textclassify/internal/infrastructure/config"
)

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// PredictionCache stores classification results keyed by trimmed input
// text. Inference is deterministic for a loaded model, so cached results
// are exact. Cache failures degrade to a classifier call, never to a
// request error.
type PredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPredictionCache creates a prediction cache with the given entry TTL.
func NewPredictionCache(client *redis.Client, ttl time.Duration) *PredictionCache {
	return &PredictionCache{client: client, ttl: ttl}
}

func (c *PredictionCache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "prediction:" + hex.EncodeToString(sum[:])
}

// Get returns the cached result for text, if any.
func (c *PredictionCache) Get(ctx context.Context, text string) (*service.ClassificationResult, bool) {
	data, err := c.client.Get(ctx, c.key(text)).Bytes()
	if err != nil {
		return nil, false
	}
	var result service.ClassificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Set stores the result for text.
func (c *PredictionCache) Set(ctx context.Context, text string, result *service.ClassificationResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.key(text), data, c.ttl)
}
