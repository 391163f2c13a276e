package optimizer

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/trade-lens/internal/metrics"
	"github.com/yourusername/trade-lens/internal/models"
)

// Clock abstracts time for the cache so eviction ordering is testable
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock implementation
func SystemClock() Clock { return systemClock{} }

// CacheKey identifies one optimization context: the symbol, its market,
// and a hash of the recent price window the selection was made against.
type CacheKey struct {
	Symbol     string
	Market     models.Market
	WindowHash string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Symbol, k.Market, k.WindowHash)
}

// ParamCache provides bounded in-memory caching of selected parameters.
// TTL expiry is delegated to the backing store; size bounding evicts the
// least-recently-used key under a single mutex, so concurrent runs can
// share one cache without corrupting its ordering.
type ParamCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	clock     Clock
	mu        sync.Mutex
	access    map[string]time.Time
	hitCount  uint64
	missCount uint64
}

// NewParamCache creates a new parameter cache. A nil clock defaults to
// the system clock.
func NewParamCache(ttl time.Duration, maxSize int, clk Clock) *ParamCache {
	if clk == nil {
		clk = systemClock{}
	}
	return &ParamCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
		clock:   clk,
		access:  make(map[string]time.Time),
	}
}

// Get retrieves cached parameters for a key
func (pc *ParamCache) Get(key CacheKey) (models.OptimizedParams, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	k := key.String()
	if result, found := pc.cache.Get(k); found {
		if params, ok := result.(models.OptimizedParams); ok {
			pc.hitCount++
			pc.access[k] = pc.clock.Now()
			pc.updateMetrics()
			return params, true
		}
	}

	pc.missCount++
	pc.updateMetrics()
	return models.OptimizedParams{}, false
}

// Set stores parameters for a key, evicting the least-recently-used
// entry when the cache is at capacity.
func (pc *ParamCache) Set(key CacheKey, params models.OptimizedParams) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.pruneExpired()
	k := key.String()
	if _, exists := pc.cache.Get(k); !exists && pc.maxSize > 0 {
		for pc.cache.ItemCount() >= pc.maxSize {
			if !pc.evictOldest() {
				break
			}
		}
	}

	pc.cache.Set(k, params, pc.ttl)
	pc.access[k] = pc.clock.Now()
}

// pruneExpired drops access stamps for keys the backing store expired
func (pc *ParamCache) pruneExpired() {
	pc.cache.DeleteExpired()
	for k := range pc.access {
		if _, found := pc.cache.Get(k); !found {
			delete(pc.access, k)
		}
	}
}

// evictOldest removes the least-recently-accessed entry. Returns false
// when there is nothing left to evict.
func (pc *ParamCache) evictOldest() bool {
	oldestKey := ""
	var oldestAt time.Time
	for k, at := range pc.access {
		if oldestKey == "" || at.Before(oldestAt) {
			oldestKey = k
			oldestAt = at
		}
	}
	if oldestKey == "" {
		return false
	}
	pc.cache.Delete(oldestKey)
	delete(pc.access, oldestKey)
	return true
}

// Clear flushes the entire cache
func (pc *ParamCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.access = make(map[string]time.Time)
	pc.hitCount = 0
	pc.missCount = 0
}

// ItemCount returns the number of cached entries
func (pc *ParamCache) ItemCount() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.cache.ItemCount()
}

// Stats returns cache statistics
func (pc *ParamCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.statsLocked()
}

func (pc *ParamCache) statsLocked() (hits, misses uint64, ratio float64) {
	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (pc *ParamCache) updateMetrics() {
	_, _, ratio := pc.statsLocked()
	metrics.OptimizerCacheHitRatio.Set(ratio)
}
