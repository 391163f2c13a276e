package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trade-lens/internal/models"
)

// barsFromCloses builds a daily series where each bar opens at the
// previous close with a small wick on either side.
func barsFromCloses(closes []float64) models.Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(models.Series, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		series[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, c) + 0.3,
			Low:    math.Min(open, c) - 0.3,
			Close:  c,
			Volume: 1000,
		}
	}
	return series
}

func flatBars(n int, price float64) models.Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(models.Series, n)
	for i := range series {
		series[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1000,
		}
	}
	return series
}

// fastConfig shortens every warm-up so tests can work with small series.
func fastConfig() Config {
	return Config{
		RSICandidates:          []int{2},
		SMACandidates:          []int{10},
		ReoptimizationInterval: 1000,
		MinSignalConfidence:    0.5,
		ForecastSteps:          3,
		StopLossPct:            0.03,
		TakeProfitPct:          0.05,
		MaxHoldingDays:         5,
		MACDFastPeriod:         3,
		MACDSlowPeriod:         5,
		MACDSignalPeriod:       2,
		BollingerPeriod:        3,
		BollingerK:             2,
		ATRPeriod:              3,
	}
}

// dipCloses is a steady uptrend with a two-bar pullback. The pullback
// drives a short-period RSI near zero while price holds above its SMA,
// producing exactly one buy entry.
func dipCloses() []float64 {
	closes := make([]float64, 50)
	for i := 0; i < 30; i++ {
		closes[i] = 100 + float64(i)
	}
	closes[30] = 128
	closes[31] = 127
	for i := 32; i < 50; i++ {
		closes[i] = 127 + float64(i-31)
	}
	return closes
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	engine, err := NewEngine(cfg, nil, logger)
	require.NoError(t, err)
	return engine
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := fastConfig()
	cfg.MACDFastPeriod = 30
	_, err := NewEngine(cfg, nil, nil)
	assert.Error(t, err)
}

func TestRunBacktestPullbackEntry(t *testing.T) {
	engine := newTestEngine(t, fastConfig())
	series := barsFromCloses(dipCloses())

	result := engine.RunBacktest("7203", series, models.MarketJapan)

	require.Equal(t, 1, result.TotalTrades)
	trade := result.Trades[0]
	assert.Equal(t, models.SideBuy, trade.Side)
	// Signal fires on the second pullback bar; the fill is the next open.
	assert.InDelta(t, 127.0, trade.EntryPrice, 1e-9)
	assert.Equal(t, models.ExitMaxHolding, trade.ExitReason)
	assert.InDelta(t, (133.0-127.0)/127.0*100, trade.ProfitPercent, 1e-9)
	assert.True(t, trade.Won())
	assert.Empty(t, result.Warning)
	require.NotNil(t, result.WalkForwardMetrics)
}

func TestRunBacktestDeterministic(t *testing.T) {
	engine := newTestEngine(t, fastConfig())
	series := barsFromCloses(dipCloses())

	first := engine.RunBacktest("7203", series, models.MarketJapan)
	second := engine.RunBacktest("7203", series, models.MarketJapan)

	assert.Equal(t, first, second)
}

// Truncating the series after the last trade must reproduce the same
// trades: nothing about a signal at bar i may depend on later bars.
func TestRunBacktestTruncationReproducesTrades(t *testing.T) {
	engine := newTestEngine(t, fastConfig())
	closes := dipCloses()

	full := engine.RunBacktest("7203", barsFromCloses(closes), models.MarketJapan)
	truncated := engine.RunBacktest("7203", barsFromCloses(closes[:45]), models.MarketJapan)

	assert.Equal(t, full.TotalTrades, truncated.TotalTrades)
	assert.Equal(t, full.Trades, truncated.Trades)
}

func TestRunBacktestFlatSeriesNoTrades(t *testing.T) {
	engine := newTestEngine(t, Config{})
	series := flatBars(40, 100)

	result := engine.RunBacktest("AAPL", series, models.MarketUSA)

	assert.Zero(t, result.TotalTrades)
	assert.Empty(t, result.Trades)
	assert.Empty(t, result.Warning)
	assert.Zero(t, result.WinRate)
	assert.Zero(t, result.MaxDrawdown)
}

func TestRunBacktestInsufficientData(t *testing.T) {
	engine := newTestEngine(t, Config{})
	series := flatBars(39, 100)

	result := engine.RunBacktest("AAPL", series, models.MarketUSA)

	require.NotNil(t, result)
	assert.Zero(t, result.TotalTrades)
	assert.NotNil(t, result.Trades)
	assert.Contains(t, result.Warning, "insufficient data")
	assert.Equal(t, series[0].Date, result.StartDate)
	assert.Equal(t, series[len(series)-1].Date, result.EndDate)
}

func TestRunBacktestMonotonicUptrendNoEntries(t *testing.T) {
	closes := make([]float64, 100)
	closes[0] = 100
	for i := 1; i < 100; i++ {
		closes[i] = closes[i-1] * 1.01
	}
	engine := newTestEngine(t, fastConfig())

	result := engine.RunBacktest("AAPL", barsFromCloses(closes), models.MarketUSA)

	// RSI saturates high in a one-way trend, so the pullback rule never
	// triggers an entry in either direction.
	assert.Zero(t, result.TotalTrades)
}

// Whatever trades a noisy series produces, they must be well formed:
// chronological, non-overlapping, and priced consistently with their
// exit reasons.
func TestRunBacktestTradeInvariants(t *testing.T) {
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.05 + 8*math.Sin(float64(i)/6)
	}
	cfg := fastConfig()
	cfg.ReoptimizationInterval = 20
	engine := newTestEngine(t, cfg)

	result := engine.RunBacktest("7203", barsFromCloses(closes), models.MarketJapan)

	require.Equal(t, result.TotalTrades, len(result.Trades))
	chronological := make([]models.Trade, len(result.Trades))
	for i, trade := range result.Trades {
		chronological[len(result.Trades)-1-i] = trade
	}

	for i, trade := range chronological {
		assert.True(t, trade.ExitDate.After(trade.EntryDate), "trade %d exits after entry", i)
		if i > 0 {
			prev := chronological[i-1]
			assert.True(t, trade.EntryDate.After(prev.ExitDate),
				"trade %d entered before trade %d exited", i, i-1)
		}
		switch trade.ExitReason {
		case models.ExitStopLoss:
			assert.LessOrEqual(t, trade.ProfitPercent, 0.0)
		case models.ExitTakeProfit:
			assert.Greater(t, trade.ProfitPercent, 0.0)
		}
	}
	assert.Equal(t, result.WinningTrades+result.LosingTrades, result.TotalTrades)
}

func TestGenerateRecommendationBuckets(t *testing.T) {
	assert.Equal(t, RecommendationNeedsReview, GenerateRecommendation(nil))
	assert.Equal(t, RecommendationNeedsReview, GenerateRecommendation(&models.BacktestResult{}))

	strong := &models.BacktestResult{
		TotalTrades:  30,
		WinRate:      70,
		TotalReturn:  45,
		ProfitFactor: 2.8,
		MaxDrawdown:  5,
		SharpeRatio:  2.2,
	}
	assert.Equal(t, RecommendationAccept, GenerateRecommendation(strong))

	weak := &models.BacktestResult{
		TotalTrades:  30,
		WinRate:      30,
		TotalReturn:  -20,
		ProfitFactor: 0.5,
		MaxDrawdown:  40,
		SharpeRatio:  -1,
	}
	assert.Equal(t, RecommendationReject, GenerateRecommendation(weak))
}
