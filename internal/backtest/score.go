package backtest

import (
	"math"

	"github.com/yourusername/trade-lens/internal/models"
)

// Recommendation buckets for a scored result
const (
	RecommendationAccept      = "ACCEPT"
	RecommendationReject      = "REJECT"
	RecommendationNeedsReview = "NEEDS_REVIEW"
)

// CompositeScore collapses a result into a single 0-1 quality score.
// Weights favor risk-adjusted return over raw return.
func CompositeScore(result *models.BacktestResult) float64 {
	if result == nil || result.TotalTrades == 0 {
		return 0
	}

	sharpeScore := normalize(result.SharpeRatio, -2, 3)
	returnScore := normalize(result.TotalReturn, -50, 100)
	profitFactorScore := normalize(result.ProfitFactor, 0, 3)
	drawdownPenalty := 1.0 - normalize(result.MaxDrawdown, 0, 50)
	winRateScore := normalize(result.WinRate, 0, 100)

	weighted := 0.0
	weighted += sharpeScore * 0.30
	weighted += returnScore * 0.20
	weighted += profitFactorScore * 0.20
	weighted += drawdownPenalty * 0.15
	weighted += winRateScore * 0.15
	return weighted
}

// GenerateRecommendation buckets a scored result for display
func GenerateRecommendation(result *models.BacktestResult) string {
	score := CompositeScore(result)
	if result == nil || result.TotalTrades == 0 {
		return RecommendationNeedsReview
	}
	if score > 0.7 && result.TotalReturn > 0 {
		return RecommendationAccept
	}
	if score < 0.4 || result.TotalReturn < 0 {
		return RecommendationReject
	}
	return RecommendationNeedsReview
}

func normalize(value, min, max float64) float64 {
	if max-min == 0 {
		return 0
	}
	v := (value - min) / (max - min)
	return math.Max(0, math.Min(1, v))
}
