package leaderboardservice

import (
	"context"
	"fmt"
	"goatedvips/api/cache"
	"goatedvips/api/dto"
	"goatedvips/api/repositories"
	"goatedvips/pkg/wager"
	"time"
)

const (
	memCacheKey      = "leaderboard:response"
	memCacheDuration = time.Minute
)

// MemoryCache is the in-process cache surface the service needs.
type MemoryCache interface {
	Get(key string) any
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

// LeaderboardService assembles the affiliate stats payload, reading through
// the memory cache, then Redis, then the database.
type LeaderboardService struct {
	memCache MemoryCache
	cache    cache.LeaderboardCache

	LeaderboardRepository repositories.LeaderboardRepository
}

// LeaderboardServiceDeps are the dependencies to create the service.
type LeaderboardServiceDeps struct {
	MemCache MemoryCache
	Cache    cache.LeaderboardCache
	Repo     repositories.LeaderboardRepository
}

// NewLeaderboardService creates a service for serving the leaderboard.
func NewLeaderboardService(deps *LeaderboardServiceDeps) *LeaderboardService {
	return &LeaderboardService{
		memCache:              deps.MemCache,
		cache:                 deps.Cache,
		LeaderboardRepository: deps.Repo,
	}
}

// GetStats returns the full leaderboard payload, truncated to limit entries
// per period when limit is positive.
func (ls *LeaderboardService) GetStats(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	if cached, ok := ls.memCache.Get(memCacheKey).(*dto.LeaderboardResponse); ok {
		return truncate(cached, limit), nil
	}

	if cached, err := ls.cache.GetResponse(ctx); err == nil && cached != nil {
		ls.memCache.Set(memCacheKey, cached, memCacheDuration)
		return truncate(cached, limit), nil
	}

	response, err := ls.buildResponse(ctx)
	if err != nil {
		return nil, err
	}

	ls.memCache.Set(memCacheKey, response, memCacheDuration)
	if err := ls.cache.SetResponse(ctx, response); err != nil {
		// Serving still works, the next request just rebuilds again.
		return truncate(response, limit), nil
	}

	return truncate(response, limit), nil
}

// Invalidate drops both cache layers, used after a sync cycle wrote changes.
func (ls *LeaderboardService) Invalidate(ctx context.Context) error {
	ls.memCache.Delete(memCacheKey)
	return ls.cache.Invalidate(ctx)
}

// buildResponse assembles the payload from the persisted leaderboard.
func (ls *LeaderboardService) buildResponse(ctx context.Context) (*dto.LeaderboardResponse, error) {
	users, err := ls.LeaderboardRepository.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't build the leaderboard: %w", err)
	}

	lastSynced, err := ls.LeaderboardRepository.LastSynced(ctx)
	if err != nil {
		lastSynced = time.Time{}
	}

	records := make([]wager.Record, len(users))
	for i := range users {
		records[i] = users[i].ToRecord()
	}

	return &dto.LeaderboardResponse{
		Status: "success",
		Metadata: dto.LeaderboardMetadata{
			TotalUsers:  len(records),
			LastUpdated: lastSynced,
		},
		Data: dto.LeaderboardData{
			Today:   rankedEntries(records, wager.PeriodToday),
			Weekly:  rankedEntries(records, wager.PeriodThisWeek),
			Monthly: rankedEntries(records, wager.PeriodThisMonth),
			AllTime: rankedEntries(records, wager.PeriodAllTime),
		},
	}, nil
}

// rankedEntries converts one period's competition ranking into DTO rows.
func rankedEntries(records []wager.Record, period wager.Period) dto.LeaderboardPeriod {
	ranked := wager.Rank(records, period)
	entries := make([]dto.LeaderboardEntry, len(ranked))
	for i, r := range ranked {
		entries[i] = dto.LeaderboardEntry{
			UID:     r.UID,
			Name:    r.Name,
			Wagered: r.Wagered,
			Rank:    r.Rank,
		}
	}
	return dto.LeaderboardPeriod{Data: entries}
}

// truncate returns a copy limited to the top entries of each period.
func truncate(response *dto.LeaderboardResponse, limit int) *dto.LeaderboardResponse {
	if limit <= 0 {
		return response
	}

	limited := *response
	limited.Data = dto.LeaderboardData{
		Today:   top(response.Data.Today, limit),
		Weekly:  top(response.Data.Weekly, limit),
		Monthly: top(response.Data.Monthly, limit),
		AllTime: top(response.Data.AllTime, limit),
	}
	return &limited
}

func top(period dto.LeaderboardPeriod, limit int) dto.LeaderboardPeriod {
	if len(period.Data) <= limit {
		return period
	}
	return dto.LeaderboardPeriod{Data: period.Data[:limit]}
}
