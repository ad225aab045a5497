package pagination

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// FetchCache holds recent fetch results keyed by source and window. Every
// entry costs 1, so maxEntries is the capacity.
type FetchCache struct {
	cache *ristretto.Cache[string, any]
	ttl   time.Duration
}

func NewFetchCache(maxEntries int64, ttl time.Duration) (*FetchCache, error) {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch cache: %w", err)
	}
	return &FetchCache{cache: c, ttl: ttl}, nil
}

func (c *FetchCache) get(key string) (any, bool) {
	return c.cache.Get(key)
}

func (c *FetchCache) set(key string, value any) {
	c.cache.SetWithTTL(key, value, 1, c.ttl)
}

// Wait blocks until pending writes are visible.
func (c *FetchCache) Wait() {
	c.cache.Wait()
}

func (c *FetchCache) Clear() {
	c.cache.Clear()
}

func (c *FetchCache) Close() {
	c.cache.Close()
}

func cacheKey(prefix string, args FetchArgs) string {
	return fmt.Sprintf("%s|%d|%d|%s", prefix, args.Limit, args.Offset, args.Sort)
}
