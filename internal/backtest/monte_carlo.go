package backtest

import (
	"math"
	"math/rand"
	"sort"

	"github.com/yourusername/trade-lens/internal/models"
)

// MonteCarloConfig configures trade-sequence resampling
type MonteCarloConfig struct {
	Iterations int
	Seed       int64
	RuinLevel  float64
}

// MonteCarloResult represents resampled outcome statistics. Returns are
// fractions of the unit starting equity.
type MonteCarloResult struct {
	Iterations          int       `json:"iterations"`
	MeanReturn          float64   `json:"mean_return"`
	StdReturn           float64   `json:"std_return"`
	VaR95               float64   `json:"var_95"`
	VaR99               float64   `json:"var_99"`
	ProbabilityOfProfit float64   `json:"probability_of_profit"`
	ProbabilityOfRuin   float64   `json:"probability_of_ruin"`
	Distribution        []float64 `json:"distribution"`
}

// RunMonteCarlo bootstraps the closed-trade returns: each iteration
// resamples the trade sequence with replacement and compounds it onto a
// unit equity. A fixed seed makes the resampling reproducible.
func RunMonteCarlo(trades []models.Trade, cfg MonteCarloConfig) MonteCarloResult {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.RuinLevel <= 0 {
		cfg.RuinLevel = 0.5
	}

	result := MonteCarloResult{Iterations: cfg.Iterations}
	if len(trades) == 0 {
		result.Distribution = []float64{}
		return result
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	distribution := make([]float64, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		equity := 1.0
		for range trades {
			pick := trades[rng.Intn(len(trades))]
			equity *= 1 + pick.ProfitPercent/100
			if equity <= 0 {
				equity = 0
				break
			}
		}
		distribution[i] = equity - 1
	}

	mean, std := meanStd(distribution)
	result.MeanReturn = mean
	result.StdReturn = std
	result.VaR95 = percentile(distribution, 0.05)
	result.VaR99 = percentile(distribution, 0.01)
	result.ProbabilityOfProfit = probabilityAbove(distribution, 0)
	result.ProbabilityOfRuin = probabilityAtOrBelow(distribution, -cfg.RuinLevel)
	result.Distribution = distribution
	return result
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func probabilityAtOrBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
