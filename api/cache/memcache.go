package cache

import (
	"context"
	"sync"
	"time"
)

// MemCache is a small in-process TTL cache sitting in front of Redis, so hot
// endpoints don't pay a network roundtrip on every request.
type MemCache struct {
	items         sync.Map
	cleanupTicker *time.Ticker
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

type memCacheItem struct {
	value     any
	expiresAt time.Time
}

// NewMemCache creates the memory cache and starts its cleanup worker.
func NewMemCache() *MemCache {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemCache{
		cleanupTicker: time.NewTicker(5 * time.Minute),
		ctx:           ctx,
		cancel:        cancel,
	}
	mc.startCleanupWorker()

	return mc
}

func (mc *MemCache) startCleanupWorker() {
	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		for {
			select {
			case <-mc.cleanupTicker.C:
				mc.cleanup()
			case <-mc.ctx.Done():
				return
			}
		}
	}()
}

// cleanup removes every expired key.
func (mc *MemCache) cleanup() {
	now := time.Now()
	mc.items.Range(func(key, value any) bool {
		item := value.(*memCacheItem)
		if now.After(item.expiresAt) {
			mc.items.Delete(key)
		}
		return true
	})
}

// Close stops the cleanup worker.
func (mc *MemCache) Close() {
	mc.cancel()
	mc.cleanupTicker.Stop()
	mc.wg.Wait()
}

// Get returns the cached value or nil when missing or expired.
func (mc *MemCache) Get(key string) any {
	value, exists := mc.items.Load(key)
	if !exists {
		return nil
	}

	item := value.(*memCacheItem)
	if time.Now().After(item.expiresAt) {
		mc.items.Delete(key)
		return nil
	}

	return item.value
}

// Delete removes a key.
func (mc *MemCache) Delete(key string) {
	mc.items.Delete(key)
}

// Set stores a value under the key with the given TTL.
func (mc *MemCache) Set(key string, value any, ttl time.Duration) {
	mc.items.Store(key, &memCacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}
