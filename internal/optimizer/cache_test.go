package optimizer

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trade-lens/internal/models"
)

// fakeClock advances manually so access ordering is deterministic
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func testKey(symbol string) CacheKey {
	return CacheKey{Symbol: symbol, Market: models.MarketUSA, WindowHash: "abcd1234"}
}

func TestParamCacheGetSet(t *testing.T) {
	pc := NewParamCache(time.Minute, 8, &fakeClock{now: time.Unix(0, 0)})
	params := models.OptimizedParams{RSIPeriod: 14, SMAPeriod: 20, Accuracy: 0.6}

	_, found := pc.Get(testKey("AAPL"))
	assert.False(t, found)

	pc.Set(testKey("AAPL"), params)
	got, found := pc.Get(testKey("AAPL"))
	require.True(t, found)
	assert.Equal(t, params, got)
}

func TestParamCacheEvictsLeastRecentlyUsed(t *testing.T) {
	pc := NewParamCache(time.Minute, 3, &fakeClock{now: time.Unix(0, 0)})
	for i := 0; i < 3; i++ {
		pc.Set(testKey(fmt.Sprintf("SYM%d", i)), models.OptimizedParams{RSIPeriod: i})
	}

	// Touch SYM0 so SYM1 becomes the eviction candidate.
	_, found := pc.Get(testKey("SYM0"))
	require.True(t, found)

	pc.Set(testKey("SYM3"), models.OptimizedParams{RSIPeriod: 3})
	assert.Equal(t, 3, pc.ItemCount())

	_, found = pc.Get(testKey("SYM1"))
	assert.False(t, found, "least-recently-used entry should be evicted")
	_, found = pc.Get(testKey("SYM0"))
	assert.True(t, found)
	_, found = pc.Get(testKey("SYM3"))
	assert.True(t, found)
}

func TestParamCacheTTLExpiry(t *testing.T) {
	pc := NewParamCache(10*time.Millisecond, 8, nil)
	pc.Set(testKey("AAPL"), models.OptimizedParams{RSIPeriod: 14})

	time.Sleep(25 * time.Millisecond)
	_, found := pc.Get(testKey("AAPL"))
	assert.False(t, found)
}

func TestParamCacheConcurrentAccess(t *testing.T) {
	pc := NewParamCache(time.Minute, 16, nil)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := testKey(fmt.Sprintf("SYM%d", i%32))
				pc.Set(key, models.OptimizedParams{RSIPeriod: g, SMAPeriod: i})
				pc.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, pc.ItemCount(), 16)
}

func TestParamCacheClear(t *testing.T) {
	pc := NewParamCache(time.Minute, 8, nil)
	pc.Set(testKey("AAPL"), models.OptimizedParams{RSIPeriod: 14})
	pc.Clear()

	assert.Equal(t, 0, pc.ItemCount())
	hits, misses, ratio := pc.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, ratio)
}
