package server

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

// ResolutionCache memoizes resolutions by normalized input and assembly.
// Cached values are shared and must not be modified.
type ResolutionCache struct {
	cache *gocache.Cache
}

// NewResolutionCache creates a cache whose entries expire after ttl.
// A ttl <= 0 disables caching.
func NewResolutionCache(ttl time.Duration) *ResolutionCache {
	if ttl <= 0 {
		return &ResolutionCache{}
	}
	return &ResolutionCache{cache: gocache.New(ttl, 2*ttl)}
}

func cacheKey(normalized string, assembly variant.Assembly) string {
	return string(assembly) + "|" + normalized
}

// Get returns a cached resolution.
func (c *ResolutionCache) Get(normalized string, assembly variant.Assembly) (*resolve.Resolution, bool) {
	if c.cache == nil {
		return nil, false
	}
	if val, found := c.cache.Get(cacheKey(normalized, assembly)); found {
		return val.(*resolve.Resolution), true
	}
	return nil, false
}

// Set stores a resolution with the default TTL.
func (c *ResolutionCache) Set(normalized string, assembly variant.Assembly, res *resolve.Resolution) {
	if c.cache == nil {
		return
	}
	c.cache.SetDefault(cacheKey(normalized, assembly), res)
}

// Len returns the number of cached entries, including expired ones not yet evicted.
func (c *ResolutionCache) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.ItemCount()
}

// Flush removes all entries.
func (c *ResolutionCache) Flush() {
	if c.cache != nil {
		c.cache.Flush()
	}
}
