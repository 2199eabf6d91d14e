package cache

import (
	"context"
	"encoding/json"
	"goatedvips/api/dto"
	"goatedvips/pkg/redis"
	"time"
)

const (
	leaderboardCacheDuration = 5 * time.Minute
	leaderboardKey           = "leaderboard:response"
)

// LeaderboardCache is the Redis layer for the assembled stats payload.
type LeaderboardCache interface {
	GetResponse(ctx context.Context) (*dto.LeaderboardResponse, error)
	SetResponse(ctx context.Context, response *dto.LeaderboardResponse) error
	Invalidate(ctx context.Context) error
}

type leaderboardCache struct {
	redis *redis.RedisClient
}

// NewLeaderboardCache creates a new instance of the leaderboard redis cache.
func NewLeaderboardCache(redis *redis.RedisClient) LeaderboardCache {
	return &leaderboardCache{
		redis: redis,
	}
}

// GetResponse returns the cached payload, nil on a miss.
func (lc *leaderboardCache) GetResponse(ctx context.Context) (*dto.LeaderboardResponse, error) {
	raw, err := lc.redis.Get(ctx, leaderboardKey)
	if err != nil {
		return nil, nil
	}

	var response dto.LeaderboardResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// SetResponse caches the assembled payload.
func (lc *leaderboardCache) SetResponse(ctx context.Context, response *dto.LeaderboardResponse) error {
	encoded, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return lc.redis.Set(ctx, leaderboardKey, string(encoded), leaderboardCacheDuration)
}

// Invalidate drops the cached payload so the next read rebuilds it.
func (lc *leaderboardCache) Invalidate(ctx context.Context) error {
	return lc.redis.Del(ctx, leaderboardKey).Err()
}
