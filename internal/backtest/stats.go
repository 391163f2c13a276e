package backtest

import (
	"math"

	"github.com/yourusername/trade-lens/internal/models"
)

// profitFactorCap is the large finite sentinel reported when there are
// winners but no losers; literal infinity renders badly downstream.
const profitFactorCap = 999

// Stats summarizes a list of closed trades
type Stats struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	TotalReturn   float64
	AvgProfit     float64
	AvgLoss       float64
	ProfitFactor  float64
	MaxDrawdown   float64
	SharpeRatio   float64
}

// CalculateStats aggregates chronological trades into summary statistics.
// All divisions are guarded; an empty trade list yields a zero Stats.
func CalculateStats(trades []models.Trade) Stats {
	stats := Stats{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return stats
	}

	grossProfit := 0.0
	grossLoss := 0.0
	returns := make([]float64, len(trades))
	for i, trade := range trades {
		returns[i] = trade.ProfitPercent
		if trade.ProfitPercent > 0 {
			stats.WinningTrades++
			grossProfit += trade.ProfitPercent
		} else {
			stats.LosingTrades++
			grossLoss += math.Abs(trade.ProfitPercent)
		}
	}

	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades) * 100
	if stats.WinningTrades > 0 {
		stats.AvgProfit = grossProfit / float64(stats.WinningTrades)
	}
	if stats.LosingTrades > 0 {
		stats.AvgLoss = grossLoss / float64(stats.LosingTrades)
	}
	stats.ProfitFactor = profitFactor(grossProfit, grossLoss)

	curve := CurveFromTrades(trades)
	stats.TotalReturn = curve.FinalReturn()
	stats.MaxDrawdown = curve.MaxDrawdown()
	stats.SharpeRatio = sharpeRatio(returns)

	return stats
}

func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return profitFactorCap
		}
		return 0
	}
	return grossProfit / grossLoss
}

// sharpeRatio is mean trade return over its standard deviation, with the
// risk-free rate assumed zero.
func sharpeRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean := average(returns)
	std := stddev(returns)
	if std == 0 {
		return 0
	}
	return mean / std
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	return mean / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
