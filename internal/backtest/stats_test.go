package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trade-lens/internal/models"
)

func tradeWithProfit(day int, profitPercent float64) models.Trade {
	entry := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	return models.Trade{
		Side:          models.SideBuy,
		EntryPrice:    100,
		ExitPrice:     100 * (1 + profitPercent/100),
		EntryDate:     entry,
		ExitDate:      entry.AddDate(0, 0, 2),
		ProfitPercent: profitPercent,
		ExitReason:    models.ExitTakeProfit,
	}
}

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil)
	assert.Zero(t, stats.TotalTrades)
	assert.Zero(t, stats.WinRate)
	assert.Zero(t, stats.ProfitFactor)
	assert.Zero(t, stats.SharpeRatio)
}

func TestCalculateStatsCounts(t *testing.T) {
	trades := []models.Trade{
		tradeWithProfit(0, 10),
		tradeWithProfit(3, -5),
		tradeWithProfit(6, 2),
	}
	stats := CalculateStats(trades)

	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
	assert.InDelta(t, 2.0/3.0*100, stats.WinRate, 1e-9)
	assert.InDelta(t, 6.0, stats.AvgProfit, 1e-9)
	assert.InDelta(t, 5.0, stats.AvgLoss, 1e-9)
	assert.InDelta(t, 12.0/5.0, stats.ProfitFactor, 1e-9)
}

func TestMaxDrawdownHandComputed(t *testing.T) {
	// Unit equity: 1.0 -> 1.10 -> 1.045 -> 1.0659. Peak 1.10, trough
	// 1.045, so the drawdown is exactly 5%.
	trades := []models.Trade{
		tradeWithProfit(0, 10),
		tradeWithProfit(3, -5),
		tradeWithProfit(6, 2),
	}
	stats := CalculateStats(trades)
	assert.InDelta(t, 5.0, stats.MaxDrawdown, 1e-9)
	assert.InDelta(t, 6.59, stats.TotalReturn, 0.01)
}

func TestProfitFactorSentinelOnNoLosses(t *testing.T) {
	stats := CalculateStats([]models.Trade{tradeWithProfit(0, 4), tradeWithProfit(2, 3)})
	assert.Equal(t, float64(profitFactorCap), stats.ProfitFactor)
}

func TestSharpeZeroWhenNoVariance(t *testing.T) {
	stats := CalculateStats([]models.Trade{tradeWithProfit(0, 2), tradeWithProfit(2, 2)})
	assert.Zero(t, stats.SharpeRatio)
}

func TestEquityCurveFromTrades(t *testing.T) {
	trades := []models.Trade{tradeWithProfit(0, 10), tradeWithProfit(3, -5)}
	curve := CurveFromTrades(trades)

	require.Len(t, curve, 3)
	assert.InDelta(t, 1.0, curve[0].Value, 1e-9)
	assert.InDelta(t, 1.10, curve[1].Value, 1e-9)
	assert.InDelta(t, 1.045, curve[2].Value, 1e-9)
	assert.InDelta(t, 0.05, curve[2].Drawdown, 1e-9)
}

func TestEquityCurveExports(t *testing.T) {
	curve := CurveFromTrades([]models.Trade{tradeWithProfit(0, 10)})
	assert.Contains(t, curve.ToCSV(), "date,value,drawdown")
	assert.Contains(t, curve.ToJSON(), "\"value\"")
	assert.GreaterOrEqual(t, curve.Volatility(), 0.0)
}
