package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/utils"
)

// RecommendationCache caches merged recommendation lists per learner in
// Redis. The cache is an optional subsystem: construction fails when Redis
// is not configured or unreachable, and the caller runs uncached. Get and
// Set swallow transport errors for the same reason.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewRecommendationCache(ctx context.Context, baseLog *logger.Logger) (*RecommendationCache, error) {
	log := baseLog.With("client", "RecommendationCache")
	addr := utils.GetEnv("REDIS_ADDR", "", log)
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetEnv("REDIS_PASSWORD", "", log),
		DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	ttl := time.Duration(utils.GetEnvAsInt("RECOMMENDATION_CACHE_TTL_SECONDS", 60, log)) * time.Second
	log.Info("recommendation cache connected", "addr", addr, "ttl", ttl)
	return &RecommendationCache{client: client, ttl: ttl, log: log}, nil
}

func cacheKey(learnerID uuid.UUID) string {
	return "recommendations:" + learnerID.String()
}

func (c *RecommendationCache) Get(ctx context.Context, learnerID uuid.UUID) ([]services.Recommendation, bool) {
	raw, err := c.client.Get(ctx, cacheKey(learnerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", "error", err)
		}
		return nil, false
	}
	var recs []services.Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "error", err)
		c.client.Del(ctx, cacheKey(learnerID))
		return nil, false
	}
	return recs, true
}

func (c *RecommendationCache) Set(ctx context.Context, learnerID uuid.UUID, recs []services.Recommendation) {
	raw, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(learnerID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "error", err)
	}
}

func (c *RecommendationCache) Close() error {
	return c.client.Close()
}
