package optimizer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trade-lens/internal/models"
)

func trendingBars(n int) models.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make(models.Series, n)
	price := 100.0
	for i := range bars {
		// deterministic oscillation around a mild uptrend
		price = price*1.001 + 1.5*math.Sin(float64(i)/4)
		bars[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 0.3,
			High:   price + 1.2,
			Low:    price - 1.2,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars
}

func TestSelectFallsBackOnShortWindow(t *testing.T) {
	opt := New(DefaultConfig(), nil, nil)
	bars := trendingBars(10)

	params := opt.Select("7203", models.MarketJapan, bars, 5)
	assert.Equal(t, DefaultConfig().RSICandidates[0], params.RSIPeriod)
	assert.Equal(t, DefaultConfig().SMACandidates[0], params.SMAPeriod)
	assert.Zero(t, params.Accuracy)
}

func TestSelectIsDeterministic(t *testing.T) {
	opt := New(DefaultConfig(), nil, nil)
	bars := trendingBars(200)

	first := opt.Select("AAPL", models.MarketUSA, bars, 150)
	second := opt.Select("AAPL", models.MarketUSA, bars, 150)
	assert.Equal(t, first, second)
}

func TestSelectUsesOnlyVisibleBars(t *testing.T) {
	opt := New(DefaultConfig(), nil, nil)
	bars := trendingBars(200)

	full := opt.Select("AAPL", models.MarketUSA, bars, 150)
	truncated := opt.Select("AAPL", models.MarketUSA, bars[:150], 150)
	assert.Equal(t, full, truncated, "selection at index i must not depend on bars beyond i")
}

func TestSelectPicksCandidateFromLists(t *testing.T) {
	cfg := DefaultConfig()
	opt := New(cfg, nil, nil)
	bars := trendingBars(300)

	params := opt.Select("AAPL", models.MarketUSA, bars, 250)
	assert.Contains(t, cfg.RSICandidates, params.RSIPeriod)
	assert.Contains(t, cfg.SMACandidates, params.SMAPeriod)
	assert.GreaterOrEqual(t, params.Accuracy, 0.0)
	assert.LessOrEqual(t, params.Accuracy, 1.0)
}

func TestSelectHitsCache(t *testing.T) {
	paramCache := NewParamCache(time.Minute, 16, nil)
	opt := New(DefaultConfig(), paramCache, nil)
	bars := trendingBars(200)

	first := opt.Select("AAPL", models.MarketUSA, bars, 150)
	hitsBefore, _, _ := paramCache.Stats()
	second := opt.Select("AAPL", models.MarketUSA, bars, 150)
	hitsAfter, _, _ := paramCache.Stats()

	assert.Equal(t, first, second)
	assert.Equal(t, hitsBefore+1, hitsAfter)
}

func TestHashWindowChangesWithPrices(t *testing.T) {
	bars := trendingBars(50)
	a := HashWindow(bars, 20)

	modified := append(models.Series{}, bars...)
	modified[len(modified)-1].Close += 0.5
	b := HashWindow(modified, 20)

	require.NotEqual(t, a, b)
	assert.Equal(t, a, HashWindow(bars, 20))
}
